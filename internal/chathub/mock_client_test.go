package chathub_test

import "sync"

type MockClient struct {
	userID      uint
	chatID      uint
	deliverOK   bool
	RecvChannel chan []byte

	mu     sync.Mutex
	closed bool
}

func newMockClient(userID, chatID uint) *MockClient {
	return &MockClient{
		userID:      userID,
		chatID:      chatID,
		deliverOK:   true,
		RecvChannel: make(chan []byte, 10),
	}
}

func (c *MockClient) UserID() uint {
	return c.userID
}

func (c *MockClient) ChatID() uint {
	return c.chatID
}

func (c *MockClient) Deliver(payload []byte) bool {
	if !c.deliverOK {
		return false
	}
	select {
	case c.RecvChannel <- payload:
		return true
	default:
		return false
	}
}

func (c *MockClient) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *MockClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
