package handler

import (
	"errors"
	"net/http"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/service"
	"github.com/gin-gonic/gin"
)

type artistPayload struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	InstrumentNO string `json:"instrumentNo"`
	InstrumentEN string `json:"instrumentEn"`
	BioNO        string `json:"bioNo"`
	BioEN        string `json:"bioEn"`
	PhotoURL     string `json:"photoUrl"`
	PhotoWidth   int    `json:"photoWidth"`
	PhotoHeight  int    `json:"photoHeight"`
	Featured     bool   `json:"featured"`
	SortOrder    int    `json:"sortOrder"`
}

func (p artistPayload) toInput() service.ArtistInput {
	return service.ArtistInput{
		Slug:         p.Slug,
		Name:         p.Name,
		InstrumentNO: p.InstrumentNO,
		InstrumentEN: p.InstrumentEN,
		BioNO:        p.BioNO,
		BioEN:        p.BioEN,
		PhotoURL:     p.PhotoURL,
		PhotoWidth:   p.PhotoWidth,
		PhotoHeight:  p.PhotoHeight,
		Featured:     p.Featured,
		SortOrder:    p.SortOrder,
	}
}

func artistJSON(artist *db.Artist) gin.H {
	return gin.H{
		"id":           artist.ID,
		"slug":         artist.Slug,
		"name":         artist.Name,
		"instrumentNo": artist.InstrumentNO,
		"instrumentEn": artist.InstrumentEN,
		"bioNo":        artist.BioNO,
		"bioEn":        artist.BioEN,
		"photoUrl":     artist.PhotoURL,
		"photoWidth":   artist.PhotoWidth,
		"photoHeight":  artist.PhotoHeight,
		"featured":     artist.Featured,
		"sortOrder":    artist.SortOrder,
	}
}

// GetArtists lists all artists for the studio API.
func (a *API) GetArtists(c *gin.Context) {
	artists, err := a.artists.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Kunne ikke hente artister")
		return
	}
	payload := make([]gin.H, 0, len(artists))
	for i := range artists {
		payload = append(payload, artistJSON(&artists[i]))
	}
	c.JSON(http.StatusOK, gin.H{"artists": payload})
}

// CreateArtist creates an artist from the studio API.
func (a *API) CreateArtist(c *gin.Context) {
	var payload artistPayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	artist, err := a.artists.Create(payload.toInput())
	if err != nil {
		a.respondArtistError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artistJSON(artist))
}

// UpdateArtist updates an artist from the studio API.
func (a *API) UpdateArtist(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	var payload artistPayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	artist, err := a.artists.Update(id, payload.toInput())
	if err != nil {
		a.respondArtistError(c, err)
		return
	}
	c.JSON(http.StatusOK, artistJSON(artist))
}

// DeleteArtist removes an artist.
func (a *API) DeleteArtist(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	if err := a.artists.Delete(id); err != nil {
		a.respondArtistError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artisten er slettet"})
}

// CopyArtistTranslation mirrors Norwegian fields into empty English
// ones.
func (a *API) CopyArtistTranslation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	artist, err := a.artists.CopyTranslation(id)
	if err != nil {
		a.respondArtistError(c, err)
		return
	}
	c.JSON(http.StatusOK, artistJSON(artist))
}

func (a *API) respondArtistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrArtistNotFound):
		respondError(c, http.StatusNotFound, "Artisten finnes ikke")
	case errors.Is(err, service.ErrArtistSlugTaken):
		respondError(c, http.StatusConflict, "Slug er allerede i bruk")
	case errors.Is(err, service.ErrNameRequired):
		respondError(c, http.StatusBadRequest, "Navn må fylles ut")
	default:
		respondError(c, http.StatusInternalServerError, "Noe gikk galt. Prøv igjen senere.")
	}
}
