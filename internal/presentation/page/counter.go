package page

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// Counter animates a statistic from zero to End over Duration. It starts at
// most once; later Start calls are ignored.
type Counter struct {
	End      int
	Duration time.Duration
	Suffix   string

	started   bool
	startedAt time.Time
}

func MountCounter(end int, duration time.Duration, suffix string) *Counter {
	return &Counter{End: end, Duration: duration, Suffix: suffix}
}

func (c *Counter) Start(now time.Time) bool {
	if c.started {
		return false
	}
	c.started = true
	c.startedAt = now
	return true
}

func (c *Counter) Started() bool { return c.started }

func (c *Counter) Progress(now time.Time) float64 {
	if !c.started {
		return 0
	}
	if c.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(c.startedAt)
	if elapsed < 0 {
		return 0
	}
	return math.Min(float64(elapsed)/float64(c.Duration), 1)
}

func (c *Counter) Value(now time.Time) int {
	p := c.Progress(now)
	if p >= 1 {
		return c.End
	}
	return int(math.Floor(p * float64(c.End)))
}

func (c *Counter) Done(now time.Time) bool {
	return c.Progress(now) >= 1
}

// Text is the displayed value with thousands separators, e.g. "1,500+".
func (c *Counter) Text(now time.Time) string {
	return numbers.Sprintf("%d", c.Value(now)) + c.Suffix
}
