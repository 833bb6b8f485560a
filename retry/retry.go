// Package retry runs operations with exponential backoff.
package retry

import (
	"context"
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

type Settings struct {
	InitialBackoff time.Duration
	Multiplier     int
	MaxBackoff     time.Duration
	// MaxRetries is the maximum number of attempts. 0 retries forever.
	MaxRetries int
}

func (s Settings) Verify() error {
	if s.InitialBackoff <= 0 {
		return errors.Newf("initial backoff must be set to >= 0, got %s", s.InitialBackoff)
	}
	if s.Multiplier < 1 {
		return errors.Newf("multiplier must be >= 1, got %d", s.Multiplier)
	}
	if s.MaxBackoff > 0 && s.InitialBackoff > s.MaxBackoff {
		return errors.Newf("initial backoff (%s) must be less than max backoff (%s)", s.InitialBackoff, s.MaxBackoff)
	}
	if s.MaxRetries < 0 {
		return errors.Newf("max retries must be >= 0, got %d", s.MaxRetries)
	}
	return nil
}

// DefaultSettings are used for uploads to remote stores.
func DefaultSettings() Settings {
	return Settings{
		InitialBackoff: 500 * time.Millisecond,
		Multiplier:     2,
		MaxBackoff:     10 * time.Second,
		MaxRetries:     5,
	}
}

var errPermanent = errors.New("permanent error")

// Permanent marks err so that Do returns it without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, errPermanent)
}

func IsPermanent(err error) bool {
	return errors.Is(err, errPermanent)
}

// Retry tracks the attempts made so far.
type Retry struct {
	Attempt int

	settings Settings
}

func NewRetry(settings Settings) (*Retry, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	return &Retry{Attempt: 1, settings: settings}, nil
}

func (r *Retry) ShouldContinue() bool {
	if r.settings.MaxRetries == 0 {
		return true
	}
	return r.Attempt < r.settings.MaxRetries
}

// Backoff returns how long to wait after the current attempt fails.
func (r *Retry) Backoff() time.Duration {
	d := r.settings.InitialBackoff * time.Duration(math.Pow(float64(r.settings.Multiplier), float64(r.Attempt-1)))
	if r.settings.MaxBackoff > 0 && d > r.settings.MaxBackoff {
		d = r.settings.MaxBackoff
	}
	return d
}

func (r *Retry) Next() {
	r.Attempt++
}

// Do calls fn until it succeeds, returns a Permanent error, the attempts run
// out or ctx is done. fn receives the 1-based attempt number.
func Do(ctx context.Context, settings Settings, fn func(attempt int) error) error {
	r, err := NewRetry(settings)
	if err != nil {
		return err
	}
	for {
		err := fn(r.Attempt)
		if err == nil {
			return nil
		}
		if IsPermanent(err) {
			return err
		}
		if !r.ShouldContinue() {
			return errors.Wrapf(err, "giving up after %d attempts", r.Attempt)
		}
		t := time.NewTimer(r.Backoff())
		select {
		case <-ctx.Done():
			t.Stop()
			return errors.CombineErrors(ctx.Err(), err)
		case <-t.C:
		}
		r.Next()
	}
}
