package db

import (
	"time"

	"gorm.io/gorm"
)

// Article is a news post on the public site.
type Article struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;not null"`
	TitleNO     string `gorm:"not null"`
	TitleEN     string
	LeadNO      string
	LeadEN      string
	BodyNO      string // markdown
	BodyEN      string // markdown
	CoverURL    string
	CoverWidth  int
	CoverHeight int
	Status      string `gorm:"default:draft;index"`
	PublishedAt *time.Time
}
