package db

import (
	"time"

	"gorm.io/gorm"
)

// Event is a festival concert or happening. Text fields come in
// Norwegian/English pairs; the Norwegian column is authoritative.
type Event struct {
	gorm.Model
	Slug          string `gorm:"uniqueIndex;not null"`
	TitleNO       string `gorm:"not null"`
	TitleEN       string
	DescriptionNO string // markdown
	DescriptionEN string // markdown
	Status        string `gorm:"default:draft;index"`
	TicketURL     string
	PriceTextNO   string
	PriceTextEN   string
	VenueID       uint `gorm:"index"`
	Venue         Venue
	Artists       []Artist    `gorm:"many2many:event_artists;"`
	Dates         []EventDate `gorm:"constraint:OnDelete:CASCADE;"`
}

// EventDate is a single performance of an event. Festival events can
// repeat, so one event owns any number of dates.
type EventDate struct {
	gorm.Model
	EventID  uint      `gorm:"index;not null"`
	StartsAt time.Time `gorm:"index;not null"`
	EndsAt   time.Time
}

// Venue is a concert location.
type Venue struct {
	gorm.Model
	Slug    string `gorm:"uniqueIndex;not null"`
	NameNO  string `gorm:"not null"`
	NameEN  string
	Address string
	MapURL  string
}
