package handler

import (
	"errors"
	"net/http"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/service"
	"github.com/gin-gonic/gin"
)

type venuePayload struct {
	Slug    string `json:"slug"`
	NameNO  string `json:"nameNo"`
	NameEN  string `json:"nameEn"`
	Address string `json:"address"`
	MapURL  string `json:"mapUrl"`
}

func venueJSON(venue *db.Venue) gin.H {
	return gin.H{
		"id":      venue.ID,
		"slug":    venue.Slug,
		"nameNo":  venue.NameNO,
		"nameEn":  venue.NameEN,
		"address": venue.Address,
		"mapUrl":  venue.MapURL,
	}
}

// GetVenues lists all venues for the studio API.
func (a *API) GetVenues(c *gin.Context) {
	venues, err := a.venues.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Kunne ikke hente spillesteder")
		return
	}
	payload := make([]gin.H, 0, len(venues))
	for i := range venues {
		payload = append(payload, venueJSON(&venues[i]))
	}
	c.JSON(http.StatusOK, gin.H{"venues": payload})
}

// CreateVenue creates a venue from the studio API.
func (a *API) CreateVenue(c *gin.Context) {
	var payload venuePayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	venue, err := a.venues.Create(service.VenueInput(payload))
	if err != nil {
		a.respondVenueError(c, err)
		return
	}
	c.JSON(http.StatusCreated, venueJSON(venue))
}

// UpdateVenue updates a venue from the studio API.
func (a *API) UpdateVenue(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	var payload venuePayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	venue, err := a.venues.Update(id, service.VenueInput(payload))
	if err != nil {
		a.respondVenueError(c, err)
		return
	}
	c.JSON(http.StatusOK, venueJSON(venue))
}

// DeleteVenue removes a venue unless events still reference it.
func (a *API) DeleteVenue(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	if err := a.venues.Delete(id); err != nil {
		a.respondVenueError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Spillestedet er slettet"})
}

func (a *API) respondVenueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVenueNotFound):
		respondError(c, http.StatusNotFound, "Spillestedet finnes ikke")
	case errors.Is(err, service.ErrVenueSlugTaken):
		respondError(c, http.StatusConflict, "Slug er allerede i bruk")
	case errors.Is(err, service.ErrVenueInUse):
		respondError(c, http.StatusConflict, "Spillestedet brukes av konserter")
	case errors.Is(err, service.ErrVenueName):
		respondError(c, http.StatusBadRequest, "Norsk navn må fylles ut")
	default:
		respondError(c, http.StatusInternalServerError, "Noe gikk galt. Prøv igjen senere.")
	}
}
