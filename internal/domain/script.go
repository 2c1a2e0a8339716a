package domain

import "fmt"

// Script is the fixed conversation replayed by the sequencer. The zero value is an empty script.
type Script struct {
	messages []Message
}

// NewScript validates every message and keeps a private copy, so later edits to the
// arguments do not leak into playback.
func NewScript(messages ...Message) (Script, error) {
	copied := make([]Message, 0, len(messages))
	for i, message := range messages {
		if err := message.Validate(); err != nil {
			return Script{}, fmt.Errorf("message %d: %w", i+1, err)
		}
		copied = append(copied, message.clone())
	}

	return Script{messages: copied}, nil
}

func (s Script) Len() int {
	return len(s.messages)
}

func (s Script) At(i int) Message {
	return s.messages[i].clone()
}

func (s Script) Messages() []Message {
	out := make([]Message, 0, len(s.messages))
	for _, message := range s.messages {
		out = append(out, message.clone())
	}
	return out
}

func (s Script) TotalWeight() float64 {
	var total float64
	for _, message := range s.messages {
		total += message.TokenWeight
	}
	return total
}

// ScriptDocument is a script as stored, before validation.
type ScriptDocument struct {
	Title    string
	Source   string
	Messages []Message
}
