//go:build linux

package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Prefer /dev/tty (active VT), fallback to /dev/tty0.
var ttyPaths = []string{"/dev/tty", "/dev/tty0"}

// Console owns the virtual terminal the framebuffer sits on. While acquired,
// the VT is in graphics mode so the kernel neither blinks a cursor nor
// prints console text over the frame.
type Console struct {
	Logger logger

	acquired bool
}

// Acquire switches the VT to KD_GRAPHICS and hides the cursor. Failures are
// logged and returned, but the caller may keep running: the frame is still
// drawn, only the text cursor may show through.
func (c *Console) Acquire() error {
	err := setMode(kdGraphics)
	if err != nil {
		c.errorf("KD_GRAPHICS failed: %v", err)
	} else {
		c.infof("KD_GRAPHICS set")
		c.acquired = true
	}
	if cerr := writeVT("\x1b[?25l"); cerr != nil {
		c.errorf("hide cursor failed: %v", cerr)
	}
	return err
}

// Release restores text mode and shows the cursor again.
func (c *Console) Release() error {
	if cerr := writeVT("\x1b[?25h"); cerr != nil {
		c.errorf("show cursor failed: %v", cerr)
	}
	if !c.acquired {
		return nil
	}
	c.acquired = false
	if err := setMode(kdText); err != nil {
		c.errorf("KD_TEXT failed: %v", err)
		return err
	}
	c.infof("KD_TEXT set")
	return nil
}

func (c *Console) infof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("tty", format, args...)
	}
}

func (c *Console) errorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("tty", format, args...)
	}
}

func setMode(mode int) error {
	var lastErr error
	for _, p := range ttyPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range ttyPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %w", lastErr)
}
