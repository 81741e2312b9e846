package storage

import (
	"sync"
	"time"
)

// TrackedMessage is the last question message sent to a chat.
type TrackedMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// MessageTracker remembers the live question message of every chat so it
// can be edited later, for example when a countdown runs out.
type MessageTracker struct {
	mu       sync.RWMutex
	messages map[int64]TrackedMessage
}

func NewMessageTracker() *MessageTracker {
	return &MessageTracker{
		messages: make(map[int64]TrackedMessage),
	}
}

func (s *MessageTracker) Get(chatID int64) (TrackedMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[chatID]
	return msg, ok
}

func (s *MessageTracker) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}

// Replace stores messageID as the live message of chatID and returns the
// message it replaced, if any.
func (s *MessageTracker) Replace(chatID int64, messageID int) (prev TrackedMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]

	s.messages[chatID] = TrackedMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}

	return prev, hadPrev
}
