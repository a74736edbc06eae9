package amqp

import (
	"encoding/json"
	"time"
)

// DocumentSavedMessage notifies workers that a new revision of the ledger
// document was persisted. It carries only counters; consumers reload the
// full document from the store.
type DocumentSavedMessage struct {
	Months    int       `json:"months"`
	Entries   int       `json:"entries"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDocumentSavedMessage(months, entries int) *DocumentSavedMessage {
	return &DocumentSavedMessage{
		Months:    months,
		Entries:   entries,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *DocumentSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DocumentSavedMessageFromJSON creates a message from JSON bytes.
func DocumentSavedMessageFromJSON(data []byte) (*DocumentSavedMessage, error) {
	var msg DocumentSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
