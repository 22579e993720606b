// Package tasks defines the payloads carried on the Kafka audit topic.
package tasks

import "time"

// ConversationEvent is published once per logged conversation and consumed by
// the search indexer.
type ConversationEvent struct {
	ConversationID  uint      `json:"conversationId"`
	AccountID       uint      `json:"accountId"`
	RecipientID     uint      `json:"recipientId"`
	PhoneNumber     string    `json:"phoneNumber"`
	IncomingMessage string    `json:"incomingMessage"`
	Response        string    `json:"response"`
	ContentSent     []string  `json:"contentSent"`
	CreatedAt       time.Time `json:"createdAt"`
}
