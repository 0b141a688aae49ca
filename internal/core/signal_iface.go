package core

// Frame is a raw payload written to a watcher.
type Frame []byte

// SignalConnection abstracts a push channel to one client.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
