package progress

import (
	"math/rand"
	"time"
)

// backoff produces reconnect delays that double from the initial delay up to
// the cap, with +/-20% jitter so many watchers do not reconnect in lockstep.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
	rand    *rand.Rand
}

func newBackoff(initial, max time.Duration) *backoff {
	if initial <= 0 {
		initial = time.Second
	}
	if max < initial {
		max = initial
	}
	return &backoff{
		initial: initial,
		max:     max,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the delay before the next reconnect attempt.
func (b *backoff) Next() time.Duration {
	if b.current == 0 {
		b.current = b.initial
	} else {
		b.current *= 2
		if b.current > b.max {
			b.current = b.max
		}
	}
	return b.jitter(b.current)
}

// Reset restores the initial delay after a successful connection.
func (b *backoff) Reset() {
	b.current = 0
}

func (b *backoff) jitter(d time.Duration) time.Duration {
	// Spread within [0.8d, 1.2d].
	delta := float64(d) * 0.2
	offset := (b.rand.Float64()*2 - 1) * delta
	jittered := time.Duration(float64(d) + offset)
	if jittered < b.initial {
		jittered = b.initial
	}
	return jittered
}
