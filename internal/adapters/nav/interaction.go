// Package nav is the host side of the navigation port: it forwards "advance" input to the
// registered handler.
package nav

import (
	"sync"

	"github.com/bnema/ctxplay/internal/ports"
)

type Interaction struct {
	mu      sync.Mutex
	handler ports.AdvanceHandler
}

var _ ports.NavigationPort = (*Interaction)(nil)

func NewInteraction() *Interaction {
	return &Interaction{}
}

// Register replaces any previous handler.
func (i *Interaction) Register(handler ports.AdvanceHandler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.handler = handler
}

func (i *Interaction) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.handler = nil
}

// Advance reports whether the host should move on. With no handler it always does.
func (i *Interaction) Advance() bool {
	i.mu.Lock()
	handler := i.handler
	i.mu.Unlock()

	if handler == nil {
		return true
	}
	return handler()
}
