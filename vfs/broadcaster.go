package vfs

import "sync"

var _ FolderUpdater = (*Broadcaster)(nil)

// Broadcaster fans folder refresh requests out to subscribers.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan string]struct{}),
	}
}

// Subscribe returns a channel receiving refreshed folder paths.
// The caller must call Unsubscribe when done.
func (b *Broadcaster) Subscribe() chan string {
	ch := make(chan string, 16)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; !ok {
		return
	}
	delete(b.subscribers, ch)
	close(ch)
}

// UpdateFolder publishes path to every subscriber, dropping it for
// subscribers whose buffer is full.
func (b *Broadcaster) UpdateFolder(path string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- path:
		default:
		}
	}
}

func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
