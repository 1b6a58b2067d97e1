package network

import (
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Throttle rate-limits a repeating log line. Calls over the limit are counted
// and reported with the next line that gets through.
type Throttle struct {
	limiter    *rate.Limiter
	suppressed atomic.Int64
}

func NewThrottle(every time.Duration, burst int) *Throttle {
	return &Throttle{limiter: rate.NewLimiter(rate.Every(every), burst)}
}

// Printf logs through the standard logger if the limiter allows it.
// It reports whether the line was written.
func (t *Throttle) Printf(format string, args ...any) bool {
	if !t.limiter.Allow() {
		t.suppressed.Add(1)
		return false
	}
	if n := t.suppressed.Swap(0); n > 0 {
		log.Printf(format+" (%d similar suppressed)", append(args, n)...)
		return true
	}
	log.Printf(format, args...)
	return true
}

// Suppressed returns how many lines are waiting to be reported.
func (t *Throttle) Suppressed() int64 {
	return t.suppressed.Load()
}
