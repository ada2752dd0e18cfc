//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// DefaultDeviceGlob matches every evdev node.
const DefaultDeviceGlob = "/dev/input/event*"

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevSource reads keyboards and gamepads from Linux evdev nodes, one
// goroutine per device, and hands signals to the control loop in order.
type EvdevSource struct {
	glob   string
	keymap *Keymap
	logger logger

	ch     chan Signal
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEvdevSource(glob string, keymap *Keymap, l logger) *EvdevSource {
	if glob == "" {
		glob = DefaultDeviceGlob
	}
	return &EvdevSource{glob: glob, keymap: keymap, logger: l, ch: make(chan Signal, 64)}
}

func (s *EvdevSource) Signals() <-chan Signal { return s.ch }

// Start opens every matching device. It is best-effort: a missing or
// unreadable device is logged and skipped.
func (s *EvdevSource) Start(ctx context.Context) error {
	paths, err := filepath.Glob(s.glob)
	if err != nil {
		return fmt.Errorf("evdev glob %q: %w", s.glob, err)
	}
	if len(paths) == 0 {
		s.infof("no evdev devices match %s", s.glob)
	}
	readCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			s.infof("skip %s: %v", path, err)
			continue
		}
		s.infof("reading %s", path)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.read(readCtx, fd, path)
		}()
	}
	return nil
}

// Stop ends every reader and closes the signal channel.
func (s *EvdevSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	close(s.ch)
	return nil
}

func (s *EvdevSource) read(ctx context.Context, fd int, path string) {
	f := os.NewFile(uintptr(fd), path)
	dec := &decoder{keymap: s.keymap, source: path}
	defer func() {
		_ = f.Close()
		s.release(ctx, dec)
	}()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4
	buf := make([]byte, 64*eventSize)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			s.errorf("poll %s: %v", path, err)
			return
		}
		if pollFds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			s.infof("%s went away", path)
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			s.errorf("read %s: %v", path, err)
			return
		}
		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			ev := rawEvent{
				Type:  binary.LittleEndian.Uint16(rec[tvSize : tvSize+2]),
				Code:  binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4]),
				Value: int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8])),
			}
			for _, sig := range dec.translate(ev) {
				select {
				case s.ch <- sig:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// release lets go of whatever a vanished device was still holding. Holds
// made on other devices are untouched.
func (s *EvdevSource) release(ctx context.Context, dec *decoder) {
	if ctx.Err() != nil {
		return
	}
	for _, sig := range dec.releases() {
		select {
		case s.ch <- sig:
		case <-ctx.Done():
			return
		}
	}
}

func (s *EvdevSource) infof(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Infof("input", format, args...)
	}
}

func (s *EvdevSource) errorf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Errorf("input", format, args...)
	}
}
