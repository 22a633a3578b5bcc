package db

import (
	"sync"

	"github.com/google/uuid"
)

type ChangeKind string

const (
	ChangeLogs     ChangeKind = "logs"
	ChangeCycles   ChangeKind = "cycles"
	ChangeSettings ChangeKind = "settings"
	ChangeAccount  ChangeKind = "account"
)

type Change struct {
	UserID uint
	Kind   ChangeKind
}

const defaultSubscriberBuffer = 16

// ChangeNotifier fans out store changes to subscribers. Delivery never blocks the
// writer: a subscriber with a full buffer misses the change.
type ChangeNotifier struct {
	mu          sync.Mutex
	buffer      int
	subscribers map[uuid.UUID]chan Change
}

func NewChangeNotifier(buffer int) *ChangeNotifier {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &ChangeNotifier{buffer: buffer, subscribers: make(map[uuid.UUID]chan Change)}
}

// Subscribe returns the subscription id and its receive channel.
func (notifier *ChangeNotifier) Subscribe() (uuid.UUID, <-chan Change) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	id := uuid.New()
	channel := make(chan Change, notifier.buffer)
	notifier.subscribers[id] = channel
	return id, channel
}

// Unsubscribe closes the subscription channel. Unknown ids are ignored.
func (notifier *ChangeNotifier) Unsubscribe(id uuid.UUID) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	if channel, ok := notifier.subscribers[id]; ok {
		delete(notifier.subscribers, id)
		close(channel)
	}
}

// Publish returns how many subscribers received the change.
func (notifier *ChangeNotifier) Publish(change Change) int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	delivered := 0
	for _, channel := range notifier.subscribers {
		select {
		case channel <- change:
			delivered++
		default:
		}
	}
	return delivered
}

func (notifier *ChangeNotifier) Subscribers() int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return len(notifier.subscribers)
}
