// File: internal/domain/search.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Search is one persisted keyword search session. Requester contact fields
// are stored but never serialized.
type Search struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Keyword   string    `gorm:"not null;index" json:"keyword"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UserUUID  *string   `gorm:"column:user_uuid;type:uuid;index" json:"-"`
	UserName  *string   `json:"user_name"`
	UserEmail *string   `json:"-"`
	UserPhone *string   `json:"-"`

	NewsItems []NewsItemRecord `gorm:"foreignKey:SearchID" json:"news_items"`
	Summaries []SummaryRecord  `gorm:"foreignKey:SearchID" json:"summaries"`
}

func (s *Search) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// NewsItemRecord is a NewsItem stored against its search.
type NewsItemRecord struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	SearchID    string  `gorm:"type:uuid;not null;index" json:"-"`
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Source      string  `json:"source"`
	PublishedAt string  `json:"published_at"`
	Content     *string `gorm:"type:text" json:"-"`
}

func (NewsItemRecord) TableName() string {
	return "news_items"
}

func (n *NewsItemRecord) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

type SummaryRecord struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"-"`
	SearchID    string `gorm:"type:uuid;not null;index" json:"-"`
	SummaryText string `gorm:"type:text;not null" json:"summary_text"`
}

func (SummaryRecord) TableName() string {
	return "summaries"
}

func (s *SummaryRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
