package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Metrics are the live counters shown next to the status.
type Metrics struct {
	Words int
	Chars int
	Lines int
}

// ComputeMetrics counts runes, whitespace-separated words and lines.
func ComputeMetrics(content string) Metrics {
	if content == "" {
		return Metrics{}
	}
	lines := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		lines++
	}
	return Metrics{
		Words: len(strings.Fields(content)),
		Chars: utf8.RuneCountInString(content),
		Lines: lines,
	}
}

func (m Metrics) String() string {
	return fmt.Sprintf("W:%d C:%d L:%d", m.Words, m.Chars, m.Lines)
}
