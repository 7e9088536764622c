package handler

import (
	"net/http"
	"time"

	"github.com/RKMF/kammerfest/internal/service"
	"github.com/gin-gonic/gin"
)

type settingPayload struct {
	SiteNameNO     string     `json:"siteNameNo"`
	SiteNameEN     string     `json:"siteNameEn"`
	FooterTextNO   string     `json:"footerTextNo"`
	FooterTextEN   string     `json:"footerTextEn"`
	TicketShopURL  string     `json:"ticketShopUrl"`
	FestivalStart  *time.Time `json:"festivalStart"`
	FestivalEnd    *time.Time `json:"festivalEnd"`
	ContactEmail   string     `json:"contactEmail"`
	InstagramURL   string     `json:"instagramUrl"`
	FacebookURL    string     `json:"facebookUrl"`
	NewsletterURL  string     `json:"newsletterUrl"`
	AnnouncementNO string     `json:"announcementNo"`
	AnnouncementEN string     `json:"announcementEn"`
}

// GetSettings returns the site settings for the studio API.
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.settings.Get()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Kunne ikke hente innstillinger")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"siteNameNo":     settings.SiteNameNO,
		"siteNameEn":     settings.SiteNameEN,
		"footerTextNo":   settings.FooterTextNO,
		"footerTextEn":   settings.FooterTextEN,
		"ticketShopUrl":  settings.TicketShopURL,
		"festivalStart":  settings.FestivalStart,
		"festivalEnd":    settings.FestivalEnd,
		"contactEmail":   settings.ContactEmail,
		"instagramUrl":   settings.InstagramURL,
		"facebookUrl":    settings.FacebookURL,
		"newsletterUrl":  settings.NewsletterURL,
		"announcementNo": settings.AnnouncementNO,
		"announcementEn": settings.AnnouncementEN,
	})
}

// UpdateSettings saves the site settings.
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingPayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}

	if payload.FestivalStart != nil && payload.FestivalEnd != nil &&
		payload.FestivalEnd.Before(*payload.FestivalStart) {
		respondError(c, http.StatusBadRequest, "Festivalen kan ikke slutte før den starter")
		return
	}

	if _, err := a.settings.Save(service.SettingInput(payload)); err != nil {
		respondError(c, http.StatusInternalServerError, "Kunne ikke lagre innstillinger")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Innstillingene er lagret"})
}
