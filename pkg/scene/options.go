package scene

import (
	"github.com/rs/zerolog"

	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/loop"
	"github.com/philipparndt/tokenviz/pkg/render"
)

// Option configures a Session
type Option func(*Session)

// WithScheduler sets the frame scheduler. Defaults to a manual scheduler.
func WithScheduler(s loop.Scheduler) Option {
	return func(sess *Session) {
		sess.scheduler = s
	}
}

// WithTarget sets the render target
func WithTarget(t render.Target) Option {
	return func(sess *Session) {
		sess.target = t
	}
}

// WithClock sets the time source used for pin expiry
func WithClock(c hover.Clock) Option {
	return func(sess *Session) {
		sess.clock = c
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(sess *Session) {
		sess.logger = l
	}
}

// WithViewport sets the initial viewport size in pixels
func WithViewport(width, height float64) Option {
	return func(sess *Session) {
		sess.width, sess.height = width, height
	}
}

// WithCamera sets the orbit the camera starts on and resets to
func WithCamera(radius, theta, phi float64) Option {
	return func(sess *Session) {
		sess.radius, sess.theta, sess.phi = radius, theta, phi
	}
}
