package pubsub

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Broker is an in-memory pub/sub hub. Each topic retains only its latest
// message, which is replayed to new subscribers.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan []byte // topic -> list of subscriber channels
	latest      map[string][]byte
}

// Message is the envelope written to websocket clients.
type Message struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

const subscriberBuffer = 16

var (
	once   sync.Once
	broker *Broker
)

// GetBroker returns the process-wide broker.
func GetBroker() *Broker {
	once.Do(func() {
		broker = NewBroker()
	})
	return broker
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string][]chan []byte),
		latest:      make(map[string][]byte),
	}
}

// Subscribe returns a channel receiving the topic's retained message, if
// any, followed by live messages. The returned function unsubscribes and
// closes the channel.
func (b *Broker) Subscribe(topic string) (<-chan []byte, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan []byte, subscriberBuffer)
	if msg, ok := b.latest[topic]; ok {
		ch <- msg
	}
	b.subscribers[topic] = append(b.subscribers[topic], ch)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subscribers := b.subscribers[topic]
			for i, sub := range subscribers {
				if sub == ch {
					b.subscribers[topic] = append(subscribers[:i], subscribers[i+1:]...)
					close(ch)
					break
				}
			}
			zap.S().Debugf("unsubscribed from topic %s", topic)
		})
	}

	zap.S().Debugf("new subscription to topic %s", topic)
	return ch, unsubscribe
}

// Publish retains msg as the topic's latest message and fans it out. A
// subscriber that fell behind loses its oldest buffered message.
func (b *Broker) Publish(topic string, msg []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest[topic] = msg
	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- msg:
			continue
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
}

// Latest returns the retained message of a topic.
func (b *Broker) Latest(topic string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	msg, ok := b.latest[topic]
	return msg, ok
}

// CloseTopic closes all subscriber channels and drops the retained message.
func (b *Broker) CloseTopic(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers[topic] {
		close(ch)
	}
	delete(b.subscribers, topic)
	delete(b.latest, topic)
	zap.S().Infof("closed pubsub topic %s", topic)
}

// FormatMessage wraps data into a Message for the given stream.
func FormatMessage(stream string, data interface{}) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		return []byte(`{"stream": "error", "data": "json format error"}`)
	}
	bytes, err := json.Marshal(Message{Stream: stream, Data: raw})
	if err != nil {
		return []byte(`{"stream": "error", "data": "json format error"}`)
	}
	return bytes
}
