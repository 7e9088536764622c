package handler

import (
	"errors"
	"net/http"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/service"
	"github.com/gin-gonic/gin"
)

type articlePayload struct {
	Slug        string `json:"slug"`
	TitleNO     string `json:"titleNo"`
	TitleEN     string `json:"titleEn"`
	LeadNO      string `json:"leadNo"`
	LeadEN      string `json:"leadEn"`
	BodyNO      string `json:"bodyNo"`
	BodyEN      string `json:"bodyEn"`
	CoverURL    string `json:"coverUrl"`
	CoverWidth  int    `json:"coverWidth"`
	CoverHeight int    `json:"coverHeight"`
	Status      string `json:"status"`
}

func articleJSON(article *db.Article) gin.H {
	payload := gin.H{
		"id":          article.ID,
		"slug":        article.Slug,
		"titleNo":     article.TitleNO,
		"titleEn":     article.TitleEN,
		"leadNo":      article.LeadNO,
		"leadEn":      article.LeadEN,
		"bodyNo":      article.BodyNO,
		"bodyEn":      article.BodyEN,
		"coverUrl":    article.CoverURL,
		"coverWidth":  article.CoverWidth,
		"coverHeight": article.CoverHeight,
		"status":      article.Status,
	}
	if article.PublishedAt != nil {
		payload["publishedAt"] = article.PublishedAt
	}
	return payload
}

// GetArticles lists all articles for the studio API.
func (a *API) GetArticles(c *gin.Context) {
	articles, err := a.articles.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Kunne ikke hente nyheter")
		return
	}
	payload := make([]gin.H, 0, len(articles))
	for i := range articles {
		payload = append(payload, articleJSON(&articles[i]))
	}
	c.JSON(http.StatusOK, gin.H{"articles": payload})
}

// CreateArticle creates an article from the studio API.
func (a *API) CreateArticle(c *gin.Context) {
	var payload articlePayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	article, err := a.articles.Create(service.ArticleInput(payload))
	if err != nil {
		a.respondArticleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, articleJSON(article))
}

// UpdateArticle updates an article from the studio API.
func (a *API) UpdateArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	var payload articlePayload
	if !bindJSON(c, &payload, "Ugyldig forespørsel") {
		return
	}
	if !validSlug(payload.Slug) {
		respondError(c, http.StatusBadRequest, "Ugyldig slug")
		return
	}

	article, err := a.articles.Update(id, service.ArticleInput(payload))
	if err != nil {
		a.respondArticleError(c, err)
		return
	}
	c.JSON(http.StatusOK, articleJSON(article))
}

// DeleteArticle removes an article.
func (a *API) DeleteArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	if err := a.articles.Delete(id); err != nil {
		a.respondArticleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Nyheten er slettet"})
}

// CopyArticleTranslation mirrors Norwegian fields into empty English
// ones.
func (a *API) CopyArticleTranslation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Ugyldig id")
		return
	}

	article, err := a.articles.CopyTranslation(id)
	if err != nil {
		a.respondArticleError(c, err)
		return
	}
	c.JSON(http.StatusOK, articleJSON(article))
}

func (a *API) respondArticleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrArticleNotFound):
		respondError(c, http.StatusNotFound, "Nyheten finnes ikke")
	case errors.Is(err, service.ErrArticleSlugTaken):
		respondError(c, http.StatusConflict, "Slug er allerede i bruk")
	case errors.Is(err, service.ErrArticleTitle):
		respondError(c, http.StatusBadRequest, "Norsk tittel må fylles ut")
	default:
		respondError(c, http.StatusInternalServerError, "Noe gikk galt. Prøv igjen senere.")
	}
}
