package service

import (
	"errors"
	"strings"

	"github.com/RKMF/kammerfest/internal/db"
	"gorm.io/gorm"
)

var (
	ErrArtistNotFound  = errors.New("artist not found")
	ErrArtistSlugTaken = errors.New("artist slug already in use")
	ErrNameRequired    = errors.New("artist name is required")
)

// ArtistService wraps artist related operations.
type ArtistService struct {
	db *gorm.DB
}

// ArtistInput represents fields accepted when creating or updating an
// artist.
type ArtistInput struct {
	Slug         string
	Name         string
	InstrumentNO string
	InstrumentEN string
	BioNO        string
	BioEN        string
	PhotoURL     string
	PhotoWidth   int
	PhotoHeight  int
	Featured     bool
	SortOrder    int
}

// NewArtistService creates an ArtistService instance.
func NewArtistService(gdb *gorm.DB) *ArtistService {
	return &ArtistService{db: gdb}
}

// List returns artists in listing order: featured first, then by the
// configured sort order, then alphabetically.
func (s *ArtistService) List() ([]db.Artist, error) {
	var artists []db.Artist
	if err := s.db.
		Order("featured desc").
		Order("sort_order asc").
		Order("name asc").
		Order("id asc").
		Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}

// Get fetches an artist by id with events preloaded.
func (s *ArtistService) Get(id uint) (*db.Artist, error) {
	var artist db.Artist
	if err := s.db.Preload("Events").First(&artist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &artist, nil
}

// GetBySlug fetches an artist for the public site with published
// events preloaded.
func (s *ArtistService) GetBySlug(slug string) (*db.Artist, error) {
	var artist db.Artist
	if err := s.db.
		Preload("Events", "status = ?", "published").
		Preload("Events.Venue").
		Preload("Events.Dates").
		Where("slug = ?", slug).
		First(&artist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &artist, nil
}

// Create persists an artist.
func (s *ArtistService) Create(input ArtistInput) (*db.Artist, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	artist := db.Artist{
		Slug:         strings.TrimSpace(input.Slug),
		Name:         strings.TrimSpace(input.Name),
		InstrumentNO: strings.TrimSpace(input.InstrumentNO),
		InstrumentEN: strings.TrimSpace(input.InstrumentEN),
		BioNO:        input.BioNO,
		BioEN:        input.BioEN,
		PhotoURL:     strings.TrimSpace(input.PhotoURL),
		PhotoWidth:   input.PhotoWidth,
		PhotoHeight:  input.PhotoHeight,
		Featured:     input.Featured,
		SortOrder:    input.SortOrder,
	}

	if err := s.db.Create(&artist).Error; err != nil {
		return nil, translateSlugError(err, ErrArtistSlugTaken)
	}
	return &artist, nil
}

// Update applies updates to an existing artist.
func (s *ArtistService) Update(id uint, input ArtistInput) (*db.Artist, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	artist, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	artist.Slug = strings.TrimSpace(input.Slug)
	artist.Name = strings.TrimSpace(input.Name)
	artist.InstrumentNO = strings.TrimSpace(input.InstrumentNO)
	artist.InstrumentEN = strings.TrimSpace(input.InstrumentEN)
	artist.BioNO = input.BioNO
	artist.BioEN = input.BioEN
	artist.PhotoURL = strings.TrimSpace(input.PhotoURL)
	artist.PhotoWidth = input.PhotoWidth
	artist.PhotoHeight = input.PhotoHeight
	artist.Featured = input.Featured
	artist.SortOrder = input.SortOrder

	if err := s.db.Save(artist).Error; err != nil {
		return nil, translateSlugError(err, ErrArtistSlugTaken)
	}
	return artist, nil
}

// Delete removes an artist and clears its event associations.
func (s *ArtistService) Delete(id uint) error {
	artist, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(artist).Association("Events").Clear(); err != nil {
			return err
		}
		return tx.Delete(artist).Error
	})
}

// CopyTranslation fills empty English fields from the Norwegian
// originals without touching existing translations.
func (s *ArtistService) CopyTranslation(id uint) (*db.Artist, error) {
	artist, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	changed := false
	if strings.TrimSpace(artist.InstrumentEN) == "" && artist.InstrumentNO != "" {
		artist.InstrumentEN = artist.InstrumentNO
		changed = true
	}
	if strings.TrimSpace(artist.BioEN) == "" && artist.BioNO != "" {
		artist.BioEN = artist.BioNO
		changed = true
	}

	if !changed {
		return artist, nil
	}
	if err := s.db.Model(artist).Updates(map[string]any{
		"instrument_en": artist.InstrumentEN,
		"bio_en":        artist.BioEN,
	}).Error; err != nil {
		return nil, err
	}
	return artist, nil
}
