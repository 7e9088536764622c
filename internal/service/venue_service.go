package service

import (
	"errors"
	"strings"

	"github.com/RKMF/kammerfest/internal/db"
	"gorm.io/gorm"
)

var (
	ErrVenueNotFound  = errors.New("venue not found")
	ErrVenueSlugTaken = errors.New("venue slug already in use")
	ErrVenueInUse     = errors.New("venue is referenced by events")
	ErrVenueName      = errors.New("norwegian venue name is required")
)

// VenueService wraps venue related operations.
type VenueService struct {
	db *gorm.DB
}

// VenueInput represents fields accepted when creating or updating a
// venue.
type VenueInput struct {
	Slug    string
	NameNO  string
	NameEN  string
	Address string
	MapURL  string
}

// NewVenueService creates a VenueService instance.
func NewVenueService(gdb *gorm.DB) *VenueService {
	return &VenueService{db: gdb}
}

// List returns venues ordered by name.
func (s *VenueService) List() ([]db.Venue, error) {
	var venues []db.Venue
	if err := s.db.Order("name_no asc").Order("id asc").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

// Get fetches a venue by id.
func (s *VenueService) Get(id uint) (*db.Venue, error) {
	var venue db.Venue
	if err := s.db.First(&venue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

// GetBySlug fetches a venue by slug.
func (s *VenueService) GetBySlug(slug string) (*db.Venue, error) {
	var venue db.Venue
	if err := s.db.Where("slug = ?", slug).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

// Create persists a venue.
func (s *VenueService) Create(input VenueInput) (*db.Venue, error) {
	if strings.TrimSpace(input.NameNO) == "" {
		return nil, ErrVenueName
	}

	venue := db.Venue{
		Slug:    strings.TrimSpace(input.Slug),
		NameNO:  strings.TrimSpace(input.NameNO),
		NameEN:  strings.TrimSpace(input.NameEN),
		Address: strings.TrimSpace(input.Address),
		MapURL:  strings.TrimSpace(input.MapURL),
	}

	if err := s.db.Create(&venue).Error; err != nil {
		return nil, translateSlugError(err, ErrVenueSlugTaken)
	}
	return &venue, nil
}

// Update applies updates to an existing venue.
func (s *VenueService) Update(id uint, input VenueInput) (*db.Venue, error) {
	if strings.TrimSpace(input.NameNO) == "" {
		return nil, ErrVenueName
	}

	venue, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	venue.Slug = strings.TrimSpace(input.Slug)
	venue.NameNO = strings.TrimSpace(input.NameNO)
	venue.NameEN = strings.TrimSpace(input.NameEN)
	venue.Address = strings.TrimSpace(input.Address)
	venue.MapURL = strings.TrimSpace(input.MapURL)

	if err := s.db.Save(venue).Error; err != nil {
		return nil, translateSlugError(err, ErrVenueSlugTaken)
	}
	return venue, nil
}

// Delete removes a venue unless events still reference it.
func (s *VenueService) Delete(id uint) error {
	venue, err := s.Get(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&db.Event{}).Where("venue_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrVenueInUse
	}

	return s.db.Delete(venue).Error
}
