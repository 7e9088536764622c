package handler

import (
	"net/http"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ShowLoginPage renders the studio login form.
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Redaktørinnlogging",
	})
}

// Login authenticates an editor and opens a session.
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var editor db.Editor
	if err := a.db.Where("username = ?", username).First(&editor).Error; err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "login_error.html", gin.H{"error": "Feil brukernavn eller passord"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(editor.Password), []byte(password)); err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "login_error.html", gin.H{"error": "Feil brukernavn eller passord"})
		return
	}

	session := sessions.Default(c)
	session.Set("editor_id", editor.ID)
	session.Set("username", editor.Username)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "login_error.html", gin.H{"error": "Kunne ikke lagre økten"})
		return
	}

	c.Redirect(http.StatusFound, "/studio/dashboard")
}

// Logout clears the editor session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/studio/login")
}

// ShowDashboard renders the studio landing page with content counts.
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	username := session.Get("username")

	var eventCount, artistCount, articleCount, pageCount int64
	a.db.Model(&db.Event{}).Count(&eventCount)
	a.db.Model(&db.Artist{}).Count(&artistCount)
	a.db.Model(&db.Article{}).Count(&articleCount)
	a.db.Model(&db.Page{}).Count(&pageCount)

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":        "Kontrollpanel",
		"username":     username,
		"eventCount":   eventCount,
		"artistCount":  artistCount,
		"articleCount": articleCount,
		"pageCount":    pageCount,
	})
}

// ShowEventList renders the studio event table.
func (a *API) ShowEventList(c *gin.Context) {
	events, err := a.events.ListAll()
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "studio_events.html", gin.H{
		"title":  "Konserter",
		"events": events,
	})
}

// ShowArtistList renders the studio artist table.
func (a *API) ShowArtistList(c *gin.Context) {
	artists, err := a.artists.List()
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "studio_artists.html", gin.H{
		"title":   "Artister",
		"artists": artists,
	})
}

// ShowArticleList renders the studio article table.
func (a *API) ShowArticleList(c *gin.Context) {
	articles, err := a.articles.ListAll()
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "studio_articles.html", gin.H{
		"title":    "Nyheter",
		"articles": articles,
	})
}

// ShowPageList renders the studio page table.
func (a *API) ShowPageList(c *gin.Context) {
	pages, err := a.pages.ListAll()
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "studio_pages.html", gin.H{
		"title": "Sider",
		"pages": pages,
	})
}

// AuthRequired gates studio routes behind an editor session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		editorID := session.Get("editor_id")
		if editorID == nil {
			c.Redirect(http.StatusFound, "/studio/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
