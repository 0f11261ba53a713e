package chathub

// Client is the interface for one live connection bound to a (user, chat)
// pair for its whole lifetime. It abstracts the transport so the registry
// and tests can manage connections uniformly.
type Client interface {
	// UserID returns the identifier of the authenticated user behind the connection.
	UserID() uint
	// ChatID returns the identifier of the chat the connection is scoped to.
	ChatID() uint

	// Deliver queues a serialized message for the client. It must not block:
	// it returns false when the client cannot accept the payload (full buffer
	// or already closed), which the registry treats as a disconnect.
	Deliver(payload []byte) bool

	// Close shuts the connection down. Safe to call more than once.
	Close()
}
