package db

import "gorm.io/gorm"

// Artist is a performing musician or ensemble.
type Artist struct {
	gorm.Model
	Slug         string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	InstrumentNO string
	InstrumentEN string
	BioNO        string // markdown
	BioEN        string // markdown
	PhotoURL     string
	PhotoWidth   int
	PhotoHeight  int
	Featured     bool `gorm:"index"`
	SortOrder    int
	Events       []Event `gorm:"many2many:event_artists;"`
}
