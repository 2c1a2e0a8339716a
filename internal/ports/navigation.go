package ports

// AdvanceHandler intercepts an "advance" signal from the host. Returning false keeps the
// host on the current slide.
type AdvanceHandler func() bool

type NavigationPort interface {
	Register(handler AdvanceHandler)
	Clear()
}
