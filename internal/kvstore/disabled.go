package kvstore

// Disabled is a store the user turned off. Every call fails with
// ErrUnavailable, the way a browser with site storage blocked behaves.
type Disabled struct{}

func (Disabled) Get(string) (string, bool, error) { return "", false, ErrUnavailable }
func (Disabled) Set(string, string) error         { return ErrUnavailable }
func (Disabled) Remove(string) error              { return ErrUnavailable }
func (Disabled) Close() error                     { return nil }
