package domain

import (
	"fmt"
	"time"
)

type Timing struct {
	WordDelay               time.Duration
	SweepStep               time.Duration
	SweepStepWithAttachment time.Duration
	AttachmentPerWeight     time.Duration
	SweepHold               time.Duration
	UserPause               time.Duration
	AssistantPause          time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		WordDelay:               40 * time.Millisecond,
		SweepStep:               8 * time.Millisecond,
		SweepStepWithAttachment: 3 * time.Millisecond,
		AttachmentPerWeight:     2 * time.Millisecond,
		SweepHold:               100 * time.Millisecond,
		UserPause:               200 * time.Millisecond,
		AssistantPause:          600 * time.Millisecond,
	}
}

// AttachmentDelay is how long a sweep dwells on a unit carrying its own weight.
func (t Timing) AttachmentDelay(weight float64) time.Duration {
	return time.Duration(weight * float64(t.AttachmentPerWeight))
}

func (t Timing) Validate() error {
	delays := []struct {
		name  string
		value time.Duration
	}{
		{name: "word_delay", value: t.WordDelay},
		{name: "sweep_step", value: t.SweepStep},
		{name: "sweep_step_with_attachment", value: t.SweepStepWithAttachment},
		{name: "attachment_per_weight", value: t.AttachmentPerWeight},
		{name: "sweep_hold", value: t.SweepHold},
		{name: "user_pause", value: t.UserPause},
		{name: "assistant_pause", value: t.AssistantPause},
	}

	for _, delay := range delays {
		if delay.value < 0 {
			return fmt.Errorf("%s: %w: %s", delay.name, ErrNegativeDelay, delay.value)
		}
	}

	return nil
}
