package model

import "time"

// Caregiver is a dashboard user. A caregiver's ID doubles as the account ID
// that scopes all knowledge, recipients and conversations.
type Caregiver struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Name     string `gorm:"type:varchar(100)" json:"name"`
	// ToneGuidance is injected verbatim into every prompt. Empty means the
	// default tone applies.
	ToneGuidance string    `gorm:"type:text" json:"toneGuidance"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Caregiver) TableName() string {
	return "caregivers"
}
