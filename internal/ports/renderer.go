package ports

import "github.com/bnema/ctxplay/internal/domain"

// Handle identifies a node created by a Renderer. The core never inspects it.
type Handle uint64

// Renderer is the presentation surface driven by the sequencer. Calls are fire-and-forget.
type Renderer interface {
	Clear()
	AppendMessageBlock(role domain.Role, attachment *domain.Attachment) Handle
	AppendAttachmentIndicator(parent Handle, name string, weight float64) Handle
	AppendWordUnit(parent Handle, word string) Handle
	SetUnitHighlighted(unit Handle, highlighted bool)
	SetCapacityIndicator(percentage float64, level domain.CapacityLevel)
	SetPlaybackState(state domain.PlaybackState)
	ScrollToLatest()
}
