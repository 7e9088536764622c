package handler

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/links"
	"github.com/RKMF/kammerfest/internal/locale"
	"github.com/RKMF/kammerfest/internal/monitoring"
	"github.com/RKMF/kammerfest/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = buildContentSanitizer()
)

func renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		log.Printf("markdown render failed: %v", err)
		return ""
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

type programEntryView struct {
	Title     string
	Path      string
	VenueName string
	VenuePath string
	Time      string
	Artists   []string
	TicketURL string
	PriceText string
}

type programDayView struct {
	Date    string
	Label   string
	Entries []programEntryView
}

type programFilterView struct {
	Day       string
	VenueSlug string
	Days      []programDayView
	Venues    []gin.H
}

func (a *API) programView(language string, filter service.EventFilter) ([]programDayView, error) {
	days, err := a.events.Program(filter)
	if err != nil {
		return nil, err
	}

	views := make([]programDayView, 0, len(days))
	for _, day := range days {
		view := programDayView{Date: day.Date, Label: day.Label}
		for _, entry := range day.Entries {
			// Events without a venue keep an empty link target.
			venuePath := ""
			if entry.VenueSlug != "" {
				venuePath = links.PathFor(links.TypeVenue, language, entry.VenueSlug)
			}
			view.Entries = append(view.Entries, programEntryView{
				Title:     entry.Title,
				Path:      links.PathFor(links.TypeEvent, language, entry.Slug),
				VenueName: entry.VenueName,
				VenuePath: venuePath,
				Time:      entry.StartsAt.Format("15:04"),
				Artists:   entry.Artists,
				TicketURL: entry.TicketURL,
				PriceText: entry.PriceText,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

func (a *API) programFilterData(c *gin.Context, language string) (programFilterView, error) {
	day := sanitizeDay(c.Query("day"))
	venueSlug := sanitizeSlug(c.Query("venue"))

	days, err := a.programView(language, service.EventFilter{
		Day:       day,
		VenueSlug: venueSlug,
		Language:  language,
	})
	if err != nil {
		return programFilterView{}, err
	}

	venues, err := a.venues.List()
	if err != nil {
		return programFilterView{}, err
	}
	venueOptions := make([]gin.H, 0, len(venues))
	for _, venue := range venues {
		venueOptions = append(venueOptions, gin.H{
			"slug":     venue.Slug,
			"name":     locale.Pick(language, venue.NameNO, venue.NameEN),
			"selected": venue.Slug == venueSlug,
		})
	}

	return programFilterView{Day: day, VenueSlug: venueSlug, Days: days, Venues: venueOptions}, nil
}

// ShowProgram renders the full program page with the filter bar.
func (a *API) ShowProgram(c *gin.Context) {
	pref := a.requestLocale(c)

	data, err := a.programFilterData(c, pref.Language)
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}

	dayOptions, err := a.events.ProgramDays(pref.Language)
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "program.html", gin.H{
		"title":      localizeFixedTitle(pref.Language, "Program"),
		"filter":     data,
		"dayOptions": dayOptions,
		"filterPath": links.ListPathFor(links.TypeEvent, pref.Language) + "/filter",
		"year":       time.Now().Year(),
	})
}

// FilterProgram returns the program list fragment for HTMX swaps.
// Plain navigations are redirected to the full page so the endpoint
// never serves a bare fragment to a browser.
func (a *API) FilterProgram(c *gin.Context) {
	pref := a.requestLocale(c)
	listPath := links.ListPathFor(links.TypeEvent, pref.Language)

	if !isHTMXRequest(c) {
		monitoring.TrackProgramFilter("redirect")
		c.Redirect(http.StatusFound, listPath+canonicalFilterQuery(c))
		return
	}

	data, err := a.programFilterData(c, pref.Language)
	if err != nil {
		monitoring.TrackProgramFilter("error")
		a.renderErrorFragment(c, err)
		return
	}
	monitoring.TrackProgramFilter("fragment")

	c.Header("HX-Push-Url", listPath+canonicalFilterQuery(c))
	appendVaryHeader(c, "HX-Request")
	c.Header("Cache-Control", "no-store")
	a.renderHTML(c, http.StatusOK, "fragment_program.html", gin.H{
		"filter": data,
	})
}

// canonicalFilterQuery rebuilds the query string from the validated
// parameters only.
func canonicalFilterQuery(c *gin.Context) string {
	values := url.Values{}
	if day := sanitizeDay(c.Query("day")); day != "" {
		values.Set("day", day)
	}
	if venue := sanitizeSlug(c.Query("venue")); venue != "" {
		values.Set("venue", venue)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// ShowEvent renders a published event's detail page.
func (a *API) ShowEvent(c *gin.Context) {
	pref := a.requestLocale(c)

	slug := sanitizeSlug(c.Param("slug"))
	if slug == "" {
		a.renderNotFound(c)
		return
	}

	event, err := a.events.GetPublishedBySlug(slug)
	if err != nil {
		if err == service.ErrEventNotFound {
			a.renderNotFound(c)
			return
		}
		a.renderErrorPage(c, err)
		return
	}

	artistViews := make([]gin.H, 0, len(event.Artists))
	for _, artist := range event.Artists {
		artistViews = append(artistViews, gin.H{
			"name":       artist.Name,
			"instrument": locale.Pick(pref.Language, artist.InstrumentNO, artist.InstrumentEN),
			"path":       links.PathFor(links.TypeArtist, pref.Language, artist.Slug),
		})
	}
	dateViews := make([]gin.H, 0, len(event.Dates))
	for _, date := range event.Dates {
		dateViews = append(dateViews, gin.H{
			"label": service.DayLabel(date.StartsAt, pref.Language),
			"time":  date.StartsAt.Format("15:04"),
		})
	}

	venuePath := ""
	if event.Venue.Slug != "" {
		venuePath = links.PathFor(links.TypeVenue, pref.Language, event.Venue.Slug)
	}

	a.renderHTML(c, http.StatusOK, "event.html", gin.H{
		"title":         locale.Pick(pref.Language, event.TitleNO, event.TitleEN),
		"description":   renderMarkdown(locale.Pick(pref.Language, event.DescriptionNO, event.DescriptionEN)),
		"venueName":     locale.Pick(pref.Language, event.Venue.NameNO, event.Venue.NameEN),
		"venuePath":     venuePath,
		"artists":       artistViews,
		"dates":         dateViews,
		"ticketURL":     event.TicketURL,
		"priceText":     locale.Pick(pref.Language, event.PriceTextNO, event.PriceTextEN),
		"alternatePath": links.AlternatePath(links.TypeEvent, pref.Language, event.Slug),
	})
}

// ShowArtists renders the artist listing, featured artists first.
func (a *API) ShowArtists(c *gin.Context) {
	pref := a.requestLocale(c)

	artists, err := a.artists.List()
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}

	views := make([]gin.H, 0, len(artists))
	for _, artist := range artists {
		views = append(views, gin.H{
			"name":       artist.Name,
			"instrument": locale.Pick(pref.Language, artist.InstrumentNO, artist.InstrumentEN),
			"photoURL":   artist.PhotoURL,
			"featured":   artist.Featured,
			"path":       links.PathFor(links.TypeArtist, pref.Language, artist.Slug),
		})
	}

	a.renderHTML(c, http.StatusOK, "artists.html", gin.H{
		"title":   localizeFixedTitle(pref.Language, "Artister"),
		"artists": views,
	})
}

// ShowArtist renders an artist's detail page with their published
// performances.
func (a *API) ShowArtist(c *gin.Context) {
	pref := a.requestLocale(c)

	slug := sanitizeSlug(c.Param("slug"))
	if slug == "" {
		a.renderNotFound(c)
		return
	}

	artist, err := a.artists.GetBySlug(slug)
	if err != nil {
		if err == service.ErrArtistNotFound {
			a.renderNotFound(c)
			return
		}
		a.renderErrorPage(c, err)
		return
	}

	eventViews := make([]gin.H, 0, len(artist.Events))
	for _, event := range artist.Events {
		view := gin.H{
			"title": locale.Pick(pref.Language, event.TitleNO, event.TitleEN),
			"path":  links.PathFor(links.TypeEvent, pref.Language, event.Slug),
			"venue": locale.Pick(pref.Language, event.Venue.NameNO, event.Venue.NameEN),
		}
		if len(event.Dates) > 0 {
			view["when"] = service.DayLabel(event.Dates[0].StartsAt, pref.Language)
		}
		eventViews = append(eventViews, view)
	}

	a.renderHTML(c, http.StatusOK, "artist.html", gin.H{
		"title":         artist.Name,
		"instrument":    locale.Pick(pref.Language, artist.InstrumentNO, artist.InstrumentEN),
		"bio":           renderMarkdown(locale.Pick(pref.Language, artist.BioNO, artist.BioEN)),
		"photoURL":      artist.PhotoURL,
		"events":        eventViews,
		"alternatePath": links.AlternatePath(links.TypeArtist, pref.Language, artist.Slug),
	})
}

// ShowVenue renders a venue page with the published performances held
// there.
func (a *API) ShowVenue(c *gin.Context) {
	pref := a.requestLocale(c)

	slug := sanitizeSlug(c.Param("slug"))
	if slug == "" {
		a.renderNotFound(c)
		return
	}

	venue, err := a.venues.GetBySlug(slug)
	if err != nil {
		if err == service.ErrVenueNotFound {
			a.renderNotFound(c)
			return
		}
		a.renderErrorPage(c, err)
		return
	}

	days, err := a.programView(pref.Language, service.EventFilter{
		VenueSlug: venue.Slug,
		Language:  pref.Language,
	})
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "venue.html", gin.H{
		"title":         locale.Pick(pref.Language, venue.NameNO, venue.NameEN),
		"address":       venue.Address,
		"mapURL":        venue.MapURL,
		"days":          days,
		"alternatePath": links.AlternatePath(links.TypeVenue, pref.Language, venue.Slug),
	})
}

// ShowNews renders the news listing.
func (a *API) ShowNews(c *gin.Context) {
	pref := a.requestLocale(c)

	articles, err := a.articles.ListPublished(0)
	if err != nil {
		a.renderErrorPage(c, err)
		return
	}

	views := make([]gin.H, 0, len(articles))
	for _, article := range articles {
		view := gin.H{
			"title":    locale.Pick(pref.Language, article.TitleNO, article.TitleEN),
			"lead":     locale.Pick(pref.Language, article.LeadNO, article.LeadEN),
			"coverURL": article.CoverURL,
			"path":     links.PathFor(links.TypeArticle, pref.Language, article.Slug),
		}
		if article.PublishedAt != nil {
			view["published"] = article.PublishedAt.Format("02.01.2006")
		}
		views = append(views, view)
	}

	a.renderHTML(c, http.StatusOK, "news.html", gin.H{
		"title":    localizeFixedTitle(pref.Language, "Nyheter"),
		"articles": views,
	})
}

// ShowArticle renders a published article.
func (a *API) ShowArticle(c *gin.Context) {
	pref := a.requestLocale(c)

	slug := sanitizeSlug(c.Param("slug"))
	if slug == "" {
		a.renderNotFound(c)
		return
	}

	article, err := a.articles.GetPublishedBySlug(slug)
	if err != nil {
		if err == service.ErrArticleNotFound {
			a.renderNotFound(c)
			return
		}
		a.renderErrorPage(c, err)
		return
	}

	data := gin.H{
		"title":         locale.Pick(pref.Language, article.TitleNO, article.TitleEN),
		"lead":          locale.Pick(pref.Language, article.LeadNO, article.LeadEN),
		"body":          renderMarkdown(locale.Pick(pref.Language, article.BodyNO, article.BodyEN)),
		"coverURL":      article.CoverURL,
		"alternatePath": links.AlternatePath(links.TypeArticle, pref.Language, article.Slug),
	}
	if article.PublishedAt != nil {
		data["published"] = article.PublishedAt.Format("02.01.2006")
	}

	a.renderHTML(c, http.StatusOK, "article.html", data)
}

// ShowHome renders the builder-composed front page.
func (a *API) ShowHome(c *gin.Context) {
	a.renderBuilderPage(c, service.FrontPageSlug, true)
}

// ShowPage renders a builder page addressed by slug.
func (a *API) ShowPage(c *gin.Context) {
	slug := sanitizeSlug(c.Param("slug"))
	if slug == "" {
		a.renderNotFound(c)
		return
	}
	a.renderBuilderPage(c, slug, false)
}

func (a *API) renderBuilderPage(c *gin.Context, slug string, isHome bool) {
	pref := a.requestLocale(c)

	page, err := a.pages.GetPublishedBySlug(slug)
	if err != nil {
		if err == service.ErrPageNotFound {
			if isHome {
				// A fresh install has no front page yet; fall back to
				// the program.
				c.Redirect(http.StatusFound, links.ListPathFor(links.TypeEvent, pref.Language))
				return
			}
			a.renderNotFound(c)
			return
		}
		a.renderErrorPage(c, err)
		return
	}

	sections := make([]gin.H, 0, len(page.Sections))
	for _, section := range page.Sections {
		view, err := a.sectionView(section, pref.Language)
		if err != nil {
			a.renderErrorPage(c, err)
			return
		}
		sections = append(sections, view)
	}

	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"title":         locale.Pick(pref.Language, page.TitleNO, page.TitleEN),
		"sections":      sections,
		"isHome":        isHome,
		"alternatePath": links.AlternatePath(links.TypePage, pref.Language, page.Slug),
	})
}

func (a *API) sectionView(section db.PageSection, language string) (gin.H, error) {
	view := gin.H{
		"kind":     section.Kind,
		"heading":  locale.Pick(language, section.HeadingNO, section.HeadingEN),
		"body":     renderMarkdown(locale.Pick(language, section.BodyNO, section.BodyEN)),
		"imageURL": section.ImageURL,
	}

	switch section.Kind {
	case db.SectionEventList:
		days, err := a.programView(language, service.EventFilter{Language: language})
		if err != nil {
			return nil, err
		}
		view["days"] = days
	case db.SectionArtistGallery:
		artists, err := a.artists.List()
		if err != nil {
			return nil, err
		}
		gallery := make([]gin.H, 0, len(artists))
		for _, artist := range artists {
			if !artist.Featured {
				continue
			}
			gallery = append(gallery, gin.H{
				"name":     artist.Name,
				"photoURL": artist.PhotoURL,
				"path":     links.PathFor(links.TypeArtist, language, artist.Slug),
			})
		}
		view["artists"] = gallery
	case db.SectionVideo:
		view["embedURL"] = embedURLFor(section.VideoURL)
	}

	return view, nil
}

func (a *API) renderErrorPage(c *gin.Context, err error) {
	pref := a.requestLocale(c)
	log.Printf("handler error on %s: %v", c.Request.URL.Path, err)
	a.renderHTML(c, http.StatusInternalServerError, "error.html", gin.H{
		"title":   a.siteSettings(c, pref.Language).Name,
		"message": localizeFixedTitle(pref.Language, "Noe gikk galt. Prøv igjen senere."),
	})
}

func (a *API) renderErrorFragment(c *gin.Context, err error) {
	pref := a.requestLocale(c)
	log.Printf("fragment error on %s: %v", c.Request.URL.Path, err)
	a.renderHTML(c, http.StatusInternalServerError, "fragment_error.html", gin.H{
		"message": localizeFixedTitle(pref.Language, "Noe gikk galt. Prøv igjen senere."),
	})
}

func (a *API) renderNotFound(c *gin.Context) {
	pref := a.requestLocale(c)
	a.renderHTML(c, http.StatusNotFound, "error.html", gin.H{
		"title":   a.siteSettings(c, pref.Language).Name,
		"message": localizeFixedTitle(pref.Language, "Siden finnes ikke."),
	})
}
