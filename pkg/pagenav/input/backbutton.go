// Package input turns hardware key presses into navigation. It reads Linux
// evdev devices directly, so a back key works even when no window has focus.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/internal"
)

// EventReader is the part of *evdev.InputDevice the listener reads from.
type EventReader interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// DefaultBackKeys are the key codes treated as "back".
var DefaultBackKeys = []evdev.EvCode{evdev.KEY_BACK, evdev.KEY_ESC}

// BackButton calls OnBack each time one of Keys is pressed on the device.
type BackButton struct {
	Device EventReader
	Keys   []evdev.EvCode
	OnBack func()
	Logger *slog.Logger
}

// OpenBackButton opens the evdev device at path.
func OpenBackButton(path string, onBack func()) (*BackButton, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}
	return &BackButton{Device: dev, OnBack: onBack}, nil
}

// Run reads events until ctx is done or the device fails. The device is
// closed when ctx is cancelled so a blocked read returns.
func (b *BackButton) Run(ctx context.Context) error {
	logger := b.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	keys := b.Keys
	if len(keys) == 0 {
		keys = DefaultBackKeys
	}

	stop := context.AfterFunc(ctx, func() { b.Device.Close() })
	defer stop()

	for {
		ev, err := b.Device.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input: read: %w", err)
		}

		// Value 1 is a press; 0 is release and 2 auto-repeat.
		if ev.Type != evdev.EV_KEY || ev.Value != 1 || !isBackKey(keys, ev.Code) {
			continue
		}
		logger.Debug("back key pressed", "code", int(ev.Code))
		if b.OnBack != nil {
			b.OnBack()
		}
	}
}

func isBackKey(keys []evdev.EvCode, code evdev.EvCode) bool {
	for _, k := range keys {
		if k == code {
			return true
		}
	}
	return false
}
