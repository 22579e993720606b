package model

import "time"

// ContentItem is the atomic unit of verified information a caregiver stores
// for a care recipient.
type ContentItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AccountID   uint   `gorm:"index;not null" json:"accountId"`
	CategoryID  uint   `gorm:"index;not null" json:"categoryId"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Keywords are trimmed and deduplicated case-insensitively on write.
	Keywords  StringList `gorm:"type:json" json:"keywords"`
	MediaURL  string     `gorm:"type:varchar(512)" json:"mediaUrl"`
	MediaType string     `gorm:"type:varchar(50)" json:"mediaType"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ContentItem) TableName() string {
	return "content_items"
}
