// Package bus is an in-process publish/subscribe hub with retained
// messages. Services announce their state on it and accept requests
// through it.
package bus

import (
	"strings"
	"sync"
)

// -----------------------------------------------------------------------------
// Topics + Messages
// -----------------------------------------------------------------------------

// Topic is a path of string segments, e.g. sdram/bank1/state.
type Topic []string

// T builds a topic from its segments.
func T(parts ...string) Topic { return Topic(parts) }

func (t Topic) String() string { return strings.Join(t, "/") }

// With returns a copy of t with more segments appended.
func (t Topic) With(parts ...string) Topic {
	out := make(Topic, 0, len(t)+len(parts))
	out = append(out, t...)
	return append(out, parts...)
}

// key joins with a byte that cannot appear in a segment typed by hand.
func (t Topic) key() string { return strings.Join(t, "\x00") }

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	ReplyTo  Topic
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic Topic
	ch    chan *Message
	conn  *Connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type Bus struct {
	mu       sync.Mutex
	subs     map[string][]*Subscription
	retained map[string]*Message
	qLen     int
}

// NewBus creates a bus whose subscriptions queue up to queueLen messages.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8
	}
	return &Bus{
		subs:     make(map[string][]*Subscription),
		retained: make(map[string]*Message),
		qLen:     queueLen,
	}
}

// Publish delivers msg to every subscriber of its exact topic. A full queue
// loses its oldest message. A retained message with a nil payload clears
// the retained slot.
func (b *Bus) Publish(msg *Message) {
	k := msg.Topic.key()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs[k] {
		offer(sub.ch, msg)
	}
	if msg.Retained {
		if msg.Payload == nil {
			delete(b.retained, k)
		} else {
			b.retained[k] = msg
		}
	}
}

// Retained returns the message currently retained on topic.
func (b *Bus) Retained(topic Topic) (*Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.retained[topic.key()]
	return m, ok
}

func offer(ch chan *Message, msg *Message) {
	select {
	case ch <- msg:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- msg:
	default:
	}
}

func (b *Bus) add(sub *Subscription) {
	k := sub.topic.key()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[k] = append(b.subs[k], sub)
	if m, ok := b.retained[k]; ok {
		offer(sub.ch, m)
	}
}

// remove reports whether sub was still registered.
func (b *Bus) remove(sub *Subscription) bool {
	k := sub.topic.key()
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[k]
	for i, s := range list {
		if s == sub {
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(b.subs, k)
			} else {
				b.subs[k] = list
			}
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

// Connection groups the subscriptions of one client so they can be dropped
// together.
type Connection struct {
	bus  *Bus
	id   string
	mu   sync.Mutex
	subs []*Subscription
}

// NewConnection creates a connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) ID() string { return c.id }

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

// Subscribe registers a subscription to topic. A retained message on the
// topic is queued at once.
func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, c.bus.qLen),
		conn:  c,
	}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	c.bus.add(sub)
	return sub
}

// Unsubscribe removes sub and closes its channel. Repeated calls are
// harmless.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	if c.bus.remove(sub) {
		close(sub.ch)
	}
}

// Disconnect drops every subscription of the connection.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()
	for _, sub := range subs {
		if c.bus.remove(sub) {
			close(sub.ch)
		}
	}
}
