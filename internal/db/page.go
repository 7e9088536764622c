package db

import "gorm.io/gorm"

// Section kinds accepted by the page builder.
const (
	SectionHero          = "hero"
	SectionText          = "text"
	SectionImageText     = "imageText"
	SectionEventList     = "eventList"
	SectionArtistGallery = "artistGallery"
	SectionVideo         = "video"
)

// Page is a builder-composed page addressed by slug. The front page
// lives at slug "forside".
type Page struct {
	gorm.Model
	Slug     string `gorm:"uniqueIndex;not null"`
	TitleNO  string `gorm:"not null"`
	TitleEN  string
	Status   string        `gorm:"default:draft;index"`
	Sections []PageSection `gorm:"constraint:OnDelete:CASCADE;"`
}

// PageSection is one ordered building block of a page. Which fields
// are meaningful depends on Kind.
type PageSection struct {
	gorm.Model
	PageID    uint   `gorm:"index;not null"`
	Kind      string `gorm:"not null"`
	Position  int    `gorm:"index"`
	HeadingNO string
	HeadingEN string
	BodyNO    string // markdown
	BodyEN    string // markdown
	ImageURL  string
	VideoURL  string
	EventID   *uint
	ArtistID  *uint
}

// KnownSectionKind reports whether kind is one of the builder kinds.
func KnownSectionKind(kind string) bool {
	switch kind {
	case SectionHero, SectionText, SectionImageText, SectionEventList, SectionArtistGallery, SectionVideo:
		return true
	}
	return false
}
