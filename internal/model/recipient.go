package model

import "time"

// RecipientProfile identifies a care recipient allowed to text the assistant.
// PhoneNumber is the join key from inbound messages.
type RecipientProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AccountID   uint      `gorm:"index;not null" json:"accountId"`
	PhoneNumber string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"phoneNumber"`
	Name        string    `gorm:"type:varchar(100)" json:"name"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (RecipientProfile) TableName() string {
	return "recipient_profiles"
}
