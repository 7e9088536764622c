package db

import (
	"time"

	"gorm.io/gorm"
)

// SystemSetting is the single row of site-wide configuration edited
// in the studio.
type SystemSetting struct {
	gorm.Model
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
