package server

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// client is one connected consumer. send is its backlog; done is closed when it
// is disconnected from either side.
type client struct {
	id      uuid.UUID
	remote  string
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

func newClient(remote string, buffer int) *client {
	return &client{
		id:     uuid.New(),
		remote: remote,
		send:   make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}
