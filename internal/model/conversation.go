package model

import "time"

// Conversation is the append-only audit record pairing one inbound message
// with its computed reply.
type Conversation struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	AccountID       uint   `gorm:"index;not null" json:"accountId"`
	RecipientID     uint   `gorm:"index;not null" json:"recipientId"`
	PhoneNumber     string `gorm:"type:varchar(32);not null" json:"phoneNumber"`
	IncomingMessage string `gorm:"type:text;not null" json:"incomingMessage"`
	Response        string `gorm:"type:text;not null" json:"response"`
	// ContentSent lists the titles of the matched content items included in
	// the prompt for this exchange.
	ContentSent StringList `gorm:"type:json" json:"contentSent"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}
