package handler

import (
	"errors"
	"net/http"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/service"
	"github.com/gin-gonic/gin"
)

type sectionPayload struct {
	Kind      string `json:"kind"`
	HeadingNO string `json:"headingNo"`
	HeadingEN string `json:"headingEn"`
	BodyNO    string `json:"bodyNo"`
	BodyEN    string `json:"bodyEn"`
	ImageURL  string `json:"imageUrl"`
	VideoURL  string `json:"videoUrl"`
	EventID   *uint  `json:"eventId"`
	ArtistID  *uint  `json:"artistId"`
}

type pagePayload struct {
	Slug     string           `json:"slug"`
	TitleNO  string           `json:"titleNo"`
	TitleEN  string           `json:"titleEn"`
	Status   string           `json:"status"`
	Sections []sectionPayload `json:"sections"`
}

func (p pagePayload) toInput() service.PageInput {
	input := service.PageInput{
		Slug:    p.Slug,
		TitleNO: p.TitleNO,
		TitleEN: p.TitleEN,
		Status:  p.Status,
	}
	for _, section := range p.Sections {
		input.Sections = append(input.Sections, service.SectionInput(section))
	}
	return input
}

func pageJSON(page *db.Page) gin.H {
	sections := make([]gin.H, 0, len(page.Sections))
	for _, section := range page.Sections {
		sections = append(sections, gin.H{
			"kind":      section.Kind,
			"position":  section.Position,
			"headingNo": section.HeadingNO,
			"headingEn": section.HeadingEN,
			"bodyNo":    section.BodyNO,
			"bodyEn":    section.BodyEN,
			"imageUrl":  section.ImageURL,
			"videoUrl":  section.VideoURL,
			"eventId":   section.EventID,
			"artistId":  section.ArtistID,
		})
	}
	return gin.H{
		"id":       page.ID,
		"slug":     page.Slug,
		"titleNo":  page.TitleNO,
		"titleEn":  page.TitleEN,
		"status":   page.Status,
		"sections": sections,
	}
}

// GetPages lists all pages for the studio API.
func (a *API) GetPages(c *gin.Context) {
	pages, err := a.pages.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Kunne ikke hente sider")
		return
	}
	payload := make([]gin.H, 0, len(pages))
	for i := range pages {
		payload = append(payload, pageJSON(&pages[i]))
	}
	c.JSON(http.StatusOK, gin.H{"pages": payload})
}

// GetPage fetches one page with its sections.
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	page, err := a.pages.Get(id)
	if err != nil {
		a.respondPageError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageJSON(page))
}

// CreatePage creates a page from the studio API.
func (a *API) CreatePage(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	page, err := a.pages.Create(payload.toInput())
	if err != nil {
		a.respondPageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pageJSON(page))
}

// UpdatePage updates a page from the studio API.
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	var payload pagePayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	page, err := a.pages.Update(id, payload.toInput())
	if err != nil {
		a.respondPageError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageJSON(page))
}

// DeletePage removes a page and its sections.
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	if err := a.pages.Delete(id); err != nil {
		a.respondPageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Siden er slettet"})
}

// CopyPageTranslation mirrors Norwegian fields into empty English
// ones across the page and its sections.
func (a *API) CopyPageTranslation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	page, err := a.pages.CopyTranslation(id)
	if err != nil {
		a.respondPageError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageJSON(page))
}

func (a *API) respondPageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		respondError(c, http.StatusNotFound, "Siden finnes ikke")
	case errors.Is(err, service.ErrPageSlugTaken):
		respondError(c, http.StatusConflict, "Slug er allerede i bruk")
	case errors.Is(err, service.ErrPageTitle):
		respondError(c, http.StatusBadRequest, "Norsk tittel må fylles ut")
	case errors.Is(err, service.ErrUnknownSection):
		respondError(c, http.StatusBadRequest, "Ukjent seksjonstype")
	case errors.Is(err, service.ErrSectionVideoURL):
		respondError(c, http.StatusBadRequest, "Video-URL er ikke tillatt")
	default:
		respondError(c, http.StatusInternalServerError, "Noe gikk galt. Prøv igjen senere.")
	}
}
