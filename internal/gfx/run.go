package gfx

import (
	"time"

	"github.com/loov/hrtime"
)

// Presenter is what the run loop drives. *Renderer implements it.
type Presenter interface {
	DrawFrame() error
	WaitIdle() error
}

// Run polls window events and draws frames until the window asks to close,
// then waits for the device to go idle. Teardown is left to the caller.
// A failed frame also waits for idle, since part of it may already be
// submitted, and returns the frame error.
func Run(window Window, presenter Presenter) error {
	stats := frameStats{start: hrtime.Now()}

	for !window.ShouldClose() {
		window.PollEvents()

		if err := presenter.DrawFrame(); err != nil {
			if idleErr := presenter.WaitIdle(); idleErr != nil {
				Logger().WithError(idleErr).Error("waiting for idle after a failed frame")
			}
			return err
		}

		if fps, ok := stats.tick(hrtime.Now()); ok {
			Logger().WithField("fps", fps).Debug("frame stats")
		}
	}

	return presenter.WaitIdle()
}

// frameStats counts frames and reports the rate once per second.
type frameStats struct {
	start  time.Duration
	frames int
}

func (s *frameStats) tick(now time.Duration) (float64, bool) {
	s.frames++

	elapsed := now - s.start
	if elapsed < time.Second {
		return 0, false
	}

	fps := float64(s.frames) / elapsed.Seconds()
	s.start = now
	s.frames = 0
	return fps, true
}
