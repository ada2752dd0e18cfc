//go:build !linux

package system

// Console is a no-op outside Linux; there is no VT to switch.
type Console struct {
	Logger logger
}

func (c *Console) Acquire() error { return nil }
func (c *Console) Release() error { return nil }
