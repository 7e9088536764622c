package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/service"
	"github.com/gin-gonic/gin"
)

type eventDatePayload struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

type eventPayload struct {
	Slug          string             `json:"slug"`
	TitleNO       string             `json:"titleNo"`
	TitleEN       string             `json:"titleEn"`
	DescriptionNO string             `json:"descriptionNo"`
	DescriptionEN string             `json:"descriptionEn"`
	Status        string             `json:"status"`
	TicketURL     string             `json:"ticketUrl"`
	PriceTextNO   string             `json:"priceTextNo"`
	PriceTextEN   string             `json:"priceTextEn"`
	VenueID       uint               `json:"venueId"`
	ArtistIDs     []uint             `json:"artistIds"`
	Dates         []eventDatePayload `json:"dates"`
}

func (p eventPayload) toInput() service.EventInput {
	input := service.EventInput{
		Slug:          p.Slug,
		TitleNO:       p.TitleNO,
		TitleEN:       p.TitleEN,
		DescriptionNO: p.DescriptionNO,
		DescriptionEN: p.DescriptionEN,
		Status:        p.Status,
		TicketURL:     p.TicketURL,
		PriceTextNO:   p.PriceTextNO,
		PriceTextEN:   p.PriceTextEN,
		VenueID:       p.VenueID,
		ArtistIDs:     p.ArtistIDs,
	}
	for _, date := range p.Dates {
		input.Dates = append(input.Dates, service.EventDateInput{StartsAt: date.StartsAt, EndsAt: date.EndsAt})
	}
	return input
}

func eventJSON(event *db.Event) gin.H {
	dates := make([]gin.H, 0, len(event.Dates))
	for _, date := range event.Dates {
		dates = append(dates, gin.H{"startsAt": date.StartsAt, "endsAt": date.EndsAt})
	}
	artistIDs := make([]uint, 0, len(event.Artists))
	for _, artist := range event.Artists {
		artistIDs = append(artistIDs, artist.ID)
	}
	return gin.H{
		"id":            event.ID,
		"slug":          event.Slug,
		"titleNo":       event.TitleNO,
		"titleEn":       event.TitleEN,
		"descriptionNo": event.DescriptionNO,
		"descriptionEn": event.DescriptionEN,
		"status":        event.Status,
		"ticketUrl":     event.TicketURL,
		"priceTextNo":   event.PriceTextNO,
		"priceTextEn":   event.PriceTextEN,
		"venueId":       event.VenueID,
		"artistIds":     artistIDs,
		"dates":         dates,
	}
}

// GetEvents lists all events for the studio API.
func (a *API) GetEvents(c *gin.Context) {
	events, err := a.events.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Kunne ikke hente konserter")
		return
	}
	payload := make([]gin.H, 0, len(events))
	for i := range events {
		payload = append(payload, eventJSON(&events[i]))
	}
	c.JSON(http.StatusOK, gin.H{"events": payload})
}

// GetEvent fetches one event.
func (a *API) GetEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	event, err := a.events.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			respondError(c, http.StatusNotFound, "Konserten finnes ikke")
			return
		}
		respondError(c, http.StatusInternalServerError, "Kunne ikke hente konserten")
		return
	}
	c.JSON(http.StatusOK, eventJSON(event))
}

// CreateEvent creates an event from the studio API.
func (a *API) CreateEvent(c *gin.Context) {
	var payload eventPayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	event, err := a.events.Create(payload.toInput())
	if err != nil {
		a.respondEventError(c, err)
		return
	}
	c.JSON(http.StatusCreated, eventJSON(event))
}

// UpdateEvent updates an event from the studio API.
func (a *API) UpdateEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	var payload eventPayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	event, err := a.events.Update(id, payload.toInput())
	if err != nil {
		a.respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventJSON(event))
}

// DeleteEvent removes an event.
func (a *API) DeleteEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	if err := a.events.Delete(id); err != nil {
		a.respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Konserten er slettet"})
}

// CopyEventTranslation mirrors Norwegian fields into empty English
// ones.
func (a *API) CopyEventTranslation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	event, err := a.events.CopyTranslation(id)
	if err != nil {
		a.respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventJSON(event))
}

func (a *API) respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		respondError(c, http.StatusNotFound, "Konserten finnes ikke")
	case errors.Is(err, service.ErrEventSlugTaken):
		respondError(c, http.StatusConflict, "Slug er allerede i bruk")
	case errors.Is(err, service.ErrTitleRequired):
		respondError(c, http.StatusBadRequest, "Norsk tittel må fylles ut")
	case errors.Is(err, service.ErrDateOrder):
		respondError(c, http.StatusBadRequest, "Sluttid kan ikke være før starttid")
	default:
		respondError(c, http.StatusInternalServerError, "Noe gikk galt. Prøv igjen senere.")
	}
}
