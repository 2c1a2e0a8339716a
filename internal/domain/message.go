package domain

import (
	"fmt"
	"math"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Attachment is swept as a single unit whose dwell time scales with its weight.
type Attachment struct {
	Name        string
	TokenWeight float64
}

type Message struct {
	Role        Role
	Content     []string
	TokenWeight float64
	Attachment  *Attachment
}

// NewMessage splits text into the word tokens revealed during playback.
func NewMessage(role Role, text string, weight float64, attachment *Attachment) Message {
	return Message{
		Role:        role,
		Content:     Words(text),
		TokenWeight: weight,
		Attachment:  attachment,
	}
}

func Words(text string) []string {
	return strings.Fields(text)
}

func (m Message) Text() string {
	return strings.Join(m.Content, " ")
}

func (m Message) WordCount() int {
	return len(m.Content)
}

// UnitCount is the number of processable units the message contributes once fully rendered.
func (m Message) UnitCount() int {
	if m.Attachment != nil {
		return len(m.Content) + 1
	}
	return len(m.Content)
}

// WeightPerWord is the uniform share of TokenWeight added as each word streams in.
func (m Message) WeightPerWord() float64 {
	if len(m.Content) == 0 {
		return 0
	}
	return m.TokenWeight / float64(len(m.Content))
}

func (m Message) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownRole, m.Role)
	}
	if len(m.Content) == 0 {
		return ErrEmptyContent
	}
	if !validWeight(m.TokenWeight) {
		return fmt.Errorf("%w: %v", ErrNegativeWeight, m.TokenWeight)
	}
	if m.Attachment == nil {
		return nil
	}

	if strings.TrimSpace(m.Attachment.Name) == "" {
		return ErrAttachmentName
	}
	if !validWeight(m.Attachment.TokenWeight) {
		return fmt.Errorf("attachment %q: %w: %v", m.Attachment.Name, ErrNegativeWeight, m.Attachment.TokenWeight)
	}
	if m.Attachment.TokenWeight > m.TokenWeight {
		return fmt.Errorf("%w: %v > %v", ErrAttachmentOverweight, m.Attachment.TokenWeight, m.TokenWeight)
	}

	return nil
}

func (m Message) clone() Message {
	out := m
	out.Content = append([]string(nil), m.Content...)
	if m.Attachment != nil {
		attachment := *m.Attachment
		out.Attachment = &attachment
	}
	return out
}

func validWeight(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
