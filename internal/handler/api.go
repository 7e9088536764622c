package handler

import (
	"strings"

	"github.com/RKMF/kammerfest/internal/locale"
	"github.com/RKMF/kammerfest/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	events      *service.EventService
	artists     *service.ArtistService
	venues      *service.VenueService
	articles    *service.ArticleService
	pages       *service.PageService
	settings    *service.SettingService
	maintenance *service.MaintenanceService
	uploadDir   string
	uploadURL   string
	siteBaseURL string
}

type siteViewModel struct {
	Name         string
	Footer       string
	Announcement string
	TicketShop   string
	ContactEmail string
	Instagram    string
	Facebook     string
	Newsletter   string
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL, siteBaseURL string) *API {
	return &API{
		db:          gdb,
		events:      service.NewEventService(gdb),
		artists:     service.NewArtistService(gdb),
		venues:      service.NewVenueService(gdb),
		articles:    service.NewArticleService(gdb),
		pages:       service.NewPageService(gdb, videoEmbedAllowed),
		settings:    service.NewSettingService(gdb),
		maintenance: service.NewMaintenanceService(gdb),
		uploadDir:   uploadDir,
		uploadURL:   uploadURL,
		siteBaseURL: siteBaseURL,
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) siteSettings(c *gin.Context, language string) siteViewModel {
	cacheKey := siteSettingsContextKey + ":" + language
	if cached, exists := c.Get(cacheKey); exists {
		if view, ok := cached.(siteViewModel); ok {
			return view
		}
	}

	settings, err := a.settings.Get()
	if err != nil {
		c.Error(err)
	}

	view := siteViewModel{
		Name:         strings.TrimSpace(locale.Pick(language, settings.SiteNameNO, settings.SiteNameEN)),
		Footer:       strings.TrimSpace(locale.Pick(language, settings.FooterTextNO, settings.FooterTextEN)),
		Announcement: strings.TrimSpace(locale.Pick(language, settings.AnnouncementNO, settings.AnnouncementEN)),
		TicketShop:   strings.TrimSpace(settings.TicketShopURL),
		ContactEmail: strings.TrimSpace(settings.ContactEmail),
		Instagram:    strings.TrimSpace(settings.InstagramURL),
		Facebook:     strings.TrimSpace(settings.FacebookURL),
		Newsletter:   strings.TrimSpace(settings.NewsletterURL),
	}
	if view.Name == "" {
		if locale.NormalizeLanguage(language) == locale.LanguageEnglish {
			view.Name = "Risør Chamber Music Festival"
		} else {
			view.Name = "Risør Kammermusikkfest"
		}
	}

	c.Set(cacheKey, view)
	return view
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	pref := a.requestLocale(c)
	view := a.siteSettings(c, pref.Language)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["lang"]; !exists {
		payload["lang"] = pref.Language
	}
	if _, exists := payload["htmlLang"]; !exists {
		payload["htmlLang"] = pref.HTMLLang
	}
	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":         view.Name,
			"footer":       view.Footer,
			"announcement": view.Announcement,
			"ticketShop":   view.TicketShop,
			"contactEmail": view.ContactEmail,
			"instagram":    view.Instagram,
			"facebook":     view.Facebook,
			"newsletter":   view.Newsletter,
		}
	}

	c.HTML(status, template, payload)
}
