// Package pacing provides the courtesy delays inserted between API actions so
// the bot's call pattern is not a machine-gun burst.
package pacing

import (
	"context"
	"math/rand"
	"time"
)

// Sleeper is the delay hook the workflows call between steps. Tests swap in a
// no-op so passes run instantly.
type Sleeper func(ctx context.Context, minMs, maxMs int)

// SleepRandom blocks for a random duration between min and max milliseconds,
// returning early when the context is cancelled.
func SleepRandom(ctx context.Context, minMs, maxMs int) {
	if maxMs < minMs {
		maxMs = minMs
	}
	d := time.Duration(minMs+rand.Intn(maxMs-minMs+1)) * time.Millisecond
	Wait(ctx, d)
}

// Wait sleeps for d or until ctx is done, whichever comes first.
func Wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// None is a Sleeper that never sleeps.
func None(context.Context, int, int) {}
