package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document is one node of the hierarchical document store. Path is the full
// slash-separated key (users/{uid}/dietPlan/Monday) and Collection is the path
// of the collection that holds it (users/{uid}/dietPlan).
type Document struct {
	Path       string         `gorm:"primaryKey;size:512" json:"path"`
	Collection string         `gorm:"size:512;not null;index" json:"collection"`
	DocID      string         `gorm:"size:128;not null" json:"id"`
	Data       datatypes.JSON `gorm:"not null" json:"data"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
