package service

import (
	"errors"
	"strings"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"gorm.io/gorm"
)

// SettingService reads and writes the single site settings row.
type SettingService struct {
	db *gorm.DB
}

// SettingInput carries the editable site settings.
type SettingInput struct {
	SiteNameNO     string
	SiteNameEN     string
	FooterTextNO   string
	FooterTextEN   string
	TicketShopURL  string
	FestivalStart  *time.Time
	FestivalEnd    *time.Time
	ContactEmail   string
	InstagramURL   string
	FacebookURL    string
	NewsletterURL  string
	AnnouncementNO string
	AnnouncementEN string
}

// NewSettingService creates a SettingService instance.
func NewSettingService(gdb *gorm.DB) *SettingService {
	return &SettingService{db: gdb}
}

// Get returns the settings row, or zero-value settings when none has
// been saved yet.
func (s *SettingService) Get() (db.SystemSetting, error) {
	var settings db.SystemSetting
	if err := s.db.Order("id asc").First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.SystemSetting{}, nil
		}
		return db.SystemSetting{}, err
	}
	return settings, nil
}

// Save creates or updates the settings row.
func (s *SettingService) Save(input SettingInput) (db.SystemSetting, error) {
	settings, err := s.Get()
	if err != nil {
		return db.SystemSetting{}, err
	}

	settings.SiteNameNO = strings.TrimSpace(input.SiteNameNO)
	settings.SiteNameEN = strings.TrimSpace(input.SiteNameEN)
	settings.FooterTextNO = strings.TrimSpace(input.FooterTextNO)
	settings.FooterTextEN = strings.TrimSpace(input.FooterTextEN)
	settings.TicketShopURL = strings.TrimSpace(input.TicketShopURL)
	settings.FestivalStart = input.FestivalStart
	settings.FestivalEnd = input.FestivalEnd
	settings.ContactEmail = strings.TrimSpace(input.ContactEmail)
	settings.InstagramURL = strings.TrimSpace(input.InstagramURL)
	settings.FacebookURL = strings.TrimSpace(input.FacebookURL)
	settings.NewsletterURL = strings.TrimSpace(input.NewsletterURL)
	settings.AnnouncementNO = strings.TrimSpace(input.AnnouncementNO)
	settings.AnnouncementEN = strings.TrimSpace(input.AnnouncementEN)

	if err := s.db.Save(&settings).Error; err != nil {
		return db.SystemSetting{}, err
	}
	return settings, nil
}
