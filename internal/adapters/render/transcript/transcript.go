// Package transcript keeps the rendered conversation in memory. The chat TUI and the
// summary output both draw from it.
package transcript

import (
	"fmt"
	"strings"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
)

type nodeKind int

const (
	nodeBlock nodeKind = iota
	nodeWord
	nodeAttachment
)

type node struct {
	kind        nodeKind
	role        domain.Role
	text        string
	weight      float64
	highlighted bool
	children    []ports.Handle
}

// Transcript implements ports.Renderer. Handles are never reused, so a handle issued before
// Clear is ignored afterwards.
type Transcript struct {
	last       ports.Handle
	nodes      map[ports.Handle]*node
	blocks     []ports.Handle
	percentage float64
	level      domain.CapacityLevel
	state      domain.PlaybackState
	scrolls    int
	revision   int
	// fresh is the assistant word appended last, until the next sweep highlights anything.
	fresh ports.Handle
}

var _ ports.Renderer = (*Transcript)(nil)

func New() *Transcript {
	return &Transcript{
		nodes: map[ports.Handle]*node{},
		level: domain.CapacityNormal,
		state: domain.StateIdle,
	}
}

func (t *Transcript) Clear() {
	t.nodes = map[ports.Handle]*node{}
	t.blocks = nil
	t.scrolls = 0
	t.fresh = 0
	t.revision++
}

func (t *Transcript) AppendMessageBlock(role domain.Role, _ *domain.Attachment) ports.Handle {
	t.fresh = 0
	h := t.add(&node{kind: nodeBlock, role: role})
	t.blocks = append(t.blocks, h)
	return h
}

func (t *Transcript) AppendAttachmentIndicator(parent ports.Handle, name string, weight float64) ports.Handle {
	return t.addChild(parent, &node{kind: nodeAttachment, text: name, weight: weight})
}

func (t *Transcript) AppendWordUnit(parent ports.Handle, word string) ports.Handle {
	h := t.addChild(parent, &node{kind: nodeWord, text: word})
	if h != 0 && t.nodes[parent].role == domain.RoleAssistant {
		t.fresh = h
	}
	return h
}

func (t *Transcript) SetUnitHighlighted(unit ports.Handle, highlighted bool) {
	n, ok := t.nodes[unit]
	if !ok || n.kind == nodeBlock || n.highlighted == highlighted {
		return
	}
	n.highlighted = highlighted
	if highlighted {
		t.fresh = 0
	}
	t.revision++
}

func (t *Transcript) SetCapacityIndicator(percentage float64, level domain.CapacityLevel) {
	t.percentage = percentage
	t.level = level
	t.revision++
}

func (t *Transcript) SetPlaybackState(state domain.PlaybackState) {
	t.state = state
	if !state.Running() {
		t.fresh = 0
	}
	t.revision++
}

func (t *Transcript) ScrollToLatest() {
	t.scrolls++
}

func (t *Transcript) add(n *node) ports.Handle {
	t.last++
	t.nodes[t.last] = n
	t.revision++
	return t.last
}

func (t *Transcript) addChild(parent ports.Handle, n *node) ports.Handle {
	block, ok := t.nodes[parent]
	if !ok || block.kind != nodeBlock {
		return 0
	}
	h := t.add(n)
	block.children = append(block.children, h)
	return h
}

type Unit struct {
	Text        string
	Attachment  bool
	Weight      float64
	Highlighted bool
	// Fresh marks the word just streamed.
	Fresh bool
}

type Block struct {
	Role  domain.Role
	Units []Unit
}

// Words is the text of the block's word units, without the attachment.
func (b Block) Words() string {
	words := make([]string, 0, len(b.Units))
	for _, u := range b.Units {
		if !u.Attachment {
			words = append(words, u.Text)
		}
	}
	return strings.Join(words, " ")
}

func (b Block) Attachment() (Unit, bool) {
	for _, u := range b.Units {
		if u.Attachment {
			return u, true
		}
	}
	return Unit{}, false
}

type View struct {
	Blocks     []Block
	Percentage float64
	Level      domain.CapacityLevel
	State      domain.PlaybackState
}

func (v View) Capacity() string {
	return fmt.Sprintf("%d%%", domain.DisplayPercent(v.Percentage))
}

// Units counts every rendered word and attachment.
func (v View) Units() int {
	total := 0
	for _, b := range v.Blocks {
		total += len(b.Units)
	}
	return total
}

func (v View) Highlighted() int {
	total := 0
	for _, b := range v.Blocks {
		for _, u := range b.Units {
			if u.Highlighted {
				total++
			}
		}
	}
	return total
}

// Snapshot copies the current state; the copy does not change with later render calls.
func (t *Transcript) Snapshot() View {
	view := View{
		Blocks:     make([]Block, 0, len(t.blocks)),
		Percentage: t.percentage,
		Level:      t.level,
		State:      t.state,
	}
	for _, h := range t.blocks {
		n := t.nodes[h]
		block := Block{Role: n.role, Units: make([]Unit, 0, len(n.children))}
		for _, ch := range n.children {
			c := t.nodes[ch]
			block.Units = append(block.Units, Unit{
				Text:        c.text,
				Attachment:  c.kind == nodeAttachment,
				Weight:      c.weight,
				Highlighted: c.highlighted,
				Fresh:       ch == t.fresh,
			})
		}
		view.Blocks = append(view.Blocks, block)
	}
	return view
}

// Revision changes whenever something visible changes.
func (t *Transcript) Revision() int {
	return t.revision
}

// ScrollRequests counts ScrollToLatest calls since the last Clear.
func (t *Transcript) ScrollRequests() int {
	return t.scrolls
}

// Text renders the conversation as plain lines, one per message.
func (t *Transcript) Text() string {
	var b strings.Builder
	for _, block := range t.Snapshot().Blocks {
		fmt.Fprintf(&b, "%s: %s", block.Role.Label(), block.Words())
		if att, ok := block.Attachment(); ok {
			fmt.Fprintf(&b, " [%s, %g tokens]", att.Text, att.Weight)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
