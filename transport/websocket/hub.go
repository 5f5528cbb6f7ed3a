package websocket

import "sync"

// hub holds every connection watching one game.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub() *hub {
	return &hub{
		clients: make(map[*client]struct{}),
	}
}

func (that *hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	c.hub = that
	that.clients[c] = struct{}{}
}

// unregister drops the client and returns how many are left.
func (that *hub) unregister(c *client) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clients[c]; ok {
		delete(that.clients, c)
		c.close()
	}

	return len(that.clients)
}

// broadcast sends text to every client; clients that cannot keep up are dropped.
func (that *hub) broadcast(text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.clients {
		if !c.send(text) {
			delete(that.clients, c)
			c.close()
		}
	}
}

func (that *hub) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.clients)
}

func (that *hub) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.clients {
		delete(that.clients, c)
		c.close()
	}
}
