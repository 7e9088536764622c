package service

import (
	"errors"
	"strings"

	"github.com/RKMF/kammerfest/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound    = errors.New("page not found")
	ErrPageSlugTaken   = errors.New("page slug already in use")
	ErrPageTitle       = errors.New("norwegian page title is required")
	ErrUnknownSection  = errors.New("unknown section kind")
	ErrSectionVideoURL = errors.New("section video url is not allowed")
)

// FrontPageSlug addresses the builder page rendered at the site root.
const FrontPageSlug = "forside"

// PageService wraps builder page operations.
type PageService struct {
	db *gorm.DB
	// videoURLAllowed guards video sections against arbitrary embeds.
	// The handler layer injects the embed whitelist check.
	videoURLAllowed func(string) bool
}

// SectionInput is one ordered building block when saving a page.
type SectionInput struct {
	Kind      string
	HeadingNO string
	HeadingEN string
	BodyNO    string
	BodyEN    string
	ImageURL  string
	VideoURL  string
	EventID   *uint
	ArtistID  *uint
}

// PageInput represents fields accepted when creating or updating a
// page. Sections are replaced wholesale in submitted order.
type PageInput struct {
	Slug     string
	TitleNO  string
	TitleEN  string
	Status   string
	Sections []SectionInput
}

// NewPageService creates a PageService instance.
func NewPageService(gdb *gorm.DB, videoURLAllowed func(string) bool) *PageService {
	if videoURLAllowed == nil {
		videoURLAllowed = func(string) bool { return false }
	}
	return &PageService{db: gdb, videoURLAllowed: videoURLAllowed}
}

// ListAll returns every page for the studio.
func (s *PageService) ListAll() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("slug asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Get fetches a page by id with sections in position order.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.Preload("Sections", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetPublishedBySlug fetches a published page for the public site.
func (s *PageService) GetPublishedBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Preload("Sections", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Where("slug = ? AND status = ?", slug, "published").
		First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Create persists a page with its sections.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	page := db.Page{
		Slug:    strings.TrimSpace(input.Slug),
		TitleNO: strings.TrimSpace(input.TitleNO),
		TitleEN: strings.TrimSpace(input.TitleEN),
		Status:  normalizeStatus(input.Status),
	}
	for i, section := range input.Sections {
		page.Sections = append(page.Sections, sectionFromInput(section, i))
	}

	if err := s.db.Create(&page).Error; err != nil {
		return nil, translateSlugError(err, ErrPageSlugTaken)
	}
	return s.Get(page.ID)
}

// Update applies updates to an existing page, replacing its sections.
func (s *PageService) Update(id uint, input PageInput) (*db.Page, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	page, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	page.Slug = strings.TrimSpace(input.Slug)
	page.TitleNO = strings.TrimSpace(input.TitleNO)
	page.TitleEN = strings.TrimSpace(input.TitleEN)
	page.Status = normalizeStatus(input.Status)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", page.ID).Delete(&db.PageSection{}).Error; err != nil {
			return err
		}
		page.Sections = nil
		for i, section := range input.Sections {
			row := sectionFromInput(section, i)
			row.PageID = page.ID
			page.Sections = append(page.Sections, row)
		}
		if err := tx.Save(page).Error; err != nil {
			return translateSlugError(err, ErrPageSlugTaken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes a page together with its sections.
func (s *PageService) Delete(id uint) error {
	page, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", page.ID).Delete(&db.PageSection{}).Error; err != nil {
			return err
		}
		return tx.Delete(page).Error
	})
}

// CopyTranslation fills empty English fields on the page and all its
// sections from the Norwegian originals.
func (s *PageService) CopyTranslation(id uint) (*db.Page, error) {
	page, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if strings.TrimSpace(page.TitleEN) == "" && page.TitleNO != "" {
			if err := tx.Model(page).Update("title_en", page.TitleNO).Error; err != nil {
				return err
			}
		}
		for i := range page.Sections {
			section := &page.Sections[i]
			updates := map[string]any{}
			if strings.TrimSpace(section.HeadingEN) == "" && section.HeadingNO != "" {
				updates["heading_en"] = section.HeadingNO
			}
			if strings.TrimSpace(section.BodyEN) == "" && section.BodyNO != "" {
				updates["body_en"] = section.BodyNO
			}
			if len(updates) == 0 {
				continue
			}
			if err := tx.Model(section).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *PageService) validate(input PageInput) error {
	if strings.TrimSpace(input.TitleNO) == "" {
		return ErrPageTitle
	}
	for _, section := range input.Sections {
		if !db.KnownSectionKind(section.Kind) {
			return ErrUnknownSection
		}
		if section.Kind == db.SectionVideo {
			if url := strings.TrimSpace(section.VideoURL); url != "" && !s.videoURLAllowed(url) {
				return ErrSectionVideoURL
			}
		}
	}
	return nil
}

func sectionFromInput(input SectionInput, position int) db.PageSection {
	return db.PageSection{
		Kind:      input.Kind,
		Position:  position,
		HeadingNO: strings.TrimSpace(input.HeadingNO),
		HeadingEN: strings.TrimSpace(input.HeadingEN),
		BodyNO:    input.BodyNO,
		BodyEN:    input.BodyEN,
		ImageURL:  strings.TrimSpace(input.ImageURL),
		VideoURL:  strings.TrimSpace(input.VideoURL),
		EventID:   input.EventID,
		ArtistID:  input.ArtistID,
	}
}
