//go:build !linux

package input

import "context"

const DefaultDeviceGlob = ""

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevSource never yields signals outside Linux.
type EvdevSource struct {
	logger logger
	ch     chan Signal
}

func NewEvdevSource(glob string, keymap *Keymap, l logger) *EvdevSource {
	return &EvdevSource{logger: l, ch: make(chan Signal)}
}

func (s *EvdevSource) Signals() <-chan Signal { return s.ch }

func (s *EvdevSource) Start(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Infof("input", "evdev is only available on linux")
	}
	return nil
}

func (s *EvdevSource) Stop() error { close(s.ch); return nil }
