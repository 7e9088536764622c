package router

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/handler"
	"github.com/RKMF/kammerfest/internal/monitoring"
	"github.com/RKMF/kammerfest/internal/ratelimit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Options collects the router's runtime wiring.
type Options struct {
	SessionSecret   string
	UploadDir       string
	UploadURLPath   string
	SiteBaseURL     string
	TemplateGlob    string
	RateLimitMax    int
	RateLimitWindow time.Duration
	// RedisClient switches the rate limiter to a shared store. Nil
	// keeps the per-process in-memory store.
	RedisClient *redis.Client
}

// SetupRouter configures the gin engine and all routes.
func SetupRouter(opts Options) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   strings.HasPrefix(opts.SiteBaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("kammerfest_session", store))
	r.Use(handler.SecurityHeaders())
	r.Use(monitoring.RequestMetrics())
	r.Use(handler.EnsureVisitorID())

	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})
	templateGlob := opts.TemplateGlob
	if templateGlob == "" {
		templateGlob = "web/template/*/*.html"
	}
	r.LoadHTMLGlob(templateGlob)

	r.Static("/static", "./web/static")
	if opts.UploadDir != "" && opts.UploadURLPath != "/static/uploads" {
		r.Static(opts.UploadURLPath, opts.UploadDir)
	}

	api := handler.NewAPI(db.DB, opts.UploadDir, opts.UploadURLPath, opts.SiteBaseURL)
	r.Use(api.LocaleMiddleware())

	var limitStore ratelimit.Store
	if opts.RedisClient != nil {
		limitStore = ratelimit.NewRedisStore(opts.RedisClient)
	} else {
		limitStore = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(opts.RateLimitMax, opts.RateLimitWindow, limitStore)
	limited := ratelimit.Middleware(ratelimit.MiddlewareConfig{
		Limiter:    limiter,
		KeyFunc:    handler.RateLimitKey,
		OnRejected: api.RateLimited,
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", monitoring.Handler())

	// Public site, Norwegian tree.
	r.GET("/", api.ShowHome)
	r.GET("/program", api.ShowProgram)
	r.GET("/program/filter", handler.FragmentCORS(), limited, api.FilterProgram)
	r.GET("/program/:slug", api.ShowEvent)
	r.GET("/artister", api.ShowArtists)
	r.GET("/artister/:slug", api.ShowArtist)
	r.GET("/nyheter", api.ShowNews)
	r.GET("/nyheter/:slug", api.ShowArticle)
	r.GET("/steder/:slug", api.ShowVenue)
	r.GET("/:slug", api.ShowPage)

	// Public site, English tree.
	en := r.Group("/en")
	{
		en.GET("", api.ShowHome)
		en.GET("/programme", api.ShowProgram)
		en.GET("/programme/filter", handler.FragmentCORS(), limited, api.FilterProgram)
		en.GET("/programme/:slug", api.ShowEvent)
		en.GET("/artists", api.ShowArtists)
		en.GET("/artists/:slug", api.ShowArtist)
		en.GET("/news", api.ShowNews)
		en.GET("/news/:slug", api.ShowArticle)
		en.GET("/venues/:slug", api.ShowVenue)
		en.GET("/:slug", api.ShowPage)
	}

	// Authoring studio.
	studio := r.Group("/studio")
	{
		studio.GET("/login", api.ShowLoginPage)
		studio.POST("/login", limited, api.Login)
		studio.GET("/logout", api.Logout)

		auth := studio.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/events", api.ShowEventList)
			auth.GET("/artists", api.ShowArtistList)
			auth.GET("/articles", api.ShowArticleList)
			auth.GET("/pages", api.ShowPageList)

			studioAPI := auth.Group("/api")
			{
				studioAPI.GET("/events", api.GetEvents)
				studioAPI.GET("/events/:id", api.GetEvent)
				studioAPI.POST("/events", api.CreateEvent)
				studioAPI.PUT("/events/:id", api.UpdateEvent)
				studioAPI.DELETE("/events/:id", api.DeleteEvent)
				studioAPI.POST("/events/:id/copy-translation", api.CopyEventTranslation)

				studioAPI.GET("/artists", api.GetArtists)
				studioAPI.POST("/artists", api.CreateArtist)
				studioAPI.PUT("/artists/:id", api.UpdateArtist)
				studioAPI.DELETE("/artists/:id", api.DeleteArtist)
				studioAPI.POST("/artists/:id/copy-translation", api.CopyArtistTranslation)

				studioAPI.GET("/venues", api.GetVenues)
				studioAPI.POST("/venues", api.CreateVenue)
				studioAPI.PUT("/venues/:id", api.UpdateVenue)
				studioAPI.DELETE("/venues/:id", api.DeleteVenue)

				studioAPI.GET("/articles", api.GetArticles)
				studioAPI.POST("/articles", api.CreateArticle)
				studioAPI.PUT("/articles/:id", api.UpdateArticle)
				studioAPI.DELETE("/articles/:id", api.DeleteArticle)
				studioAPI.POST("/articles/:id/copy-translation", api.CopyArticleTranslation)

				studioAPI.GET("/pages", api.GetPages)
				studioAPI.GET("/pages/:id", api.GetPage)
				studioAPI.POST("/pages", api.CreatePage)
				studioAPI.PUT("/pages/:id", api.UpdatePage)
				studioAPI.DELETE("/pages/:id", api.DeletePage)
				studioAPI.POST("/pages/:id/copy-translation", api.CopyPageTranslation)

				studioAPI.GET("/settings", api.GetSettings)
				studioAPI.PUT("/settings", api.UpdateSettings)

				studioAPI.POST("/upload", api.UploadImage)

				studioAPI.POST("/maintenance/cleanup-refs", api.CleanupReferences)
				studioAPI.POST("/maintenance/sync-refs", api.SyncReferences)
			}
		}
	}

	return r
}
