package gallery

import "time"

// DefaultStagger is the delay between two consecutive cards fading in.
const DefaultStagger = 50 * time.Millisecond

// DefaultFade is how long a single card takes to fade in.
const DefaultFade = 200 * time.Millisecond

// Reveal schedules the staggered fade-in of a freshly loaded result list.
// Card i starts fading at Start + i·Step.
type Reveal struct {
	Start time.Time
	Step  time.Duration
	Fade  time.Duration
}

// NewReveal starts a reveal at start with the given step. A non-positive step uses [DefaultStagger].
func NewReveal(start time.Time, step time.Duration) Reveal {
	if step <= 0 {
		step = DefaultStagger
	}
	return Reveal{Start: start, Step: step, Fade: DefaultFade}
}

// Delay returns the fade-in delay of card i.
func (r Reveal) Delay(i int) time.Duration {
	return time.Duration(i) * r.Step
}

// Progress returns the opacity of card i at now, between 0 and 1.
func (r Reveal) Progress(i int, now time.Time) float64 {
	elapsed := now.Sub(r.Start) - r.Delay(i)
	switch {
	case elapsed <= 0:
		return 0
	case r.Fade <= 0 || elapsed >= r.Fade:
		return 1
	default:
		return float64(elapsed) / float64(r.Fade)
	}
}

// Done reports whether all n cards are fully visible at now.
func (r Reveal) Done(n int, now time.Time) bool {
	if n <= 0 {
		return true
	}
	return r.Progress(n-1, now) >= 1
}
