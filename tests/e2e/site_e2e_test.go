package e2e

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/router"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler http.Handler
	public  *localClient
	editor  *localClient
	baseURL string
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_SiteAndStudio(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	t.Run("public endpoints", suite.testPublicEndpoints)
	t.Run("studio content flow", suite.testStudioContentFlow)
	t.Run("upload", suite.testUpload)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.Editor{},
		&db.Venue{},
		&db.Artist{},
		&db.Event{},
		&db.EventDate{},
		&db.Article{},
		&db.Page{},
		&db.PageSection{},
		&db.SystemSetting{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	db.DB = gdb
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	if err := db.EnsureEditor("tester", "passord123"); err != nil {
		t.Fatalf("failed to seed editor: %v", err)
	}

	venue := db.Venue{Slug: "risor-kirke", NameNO: "Risør kirke", NameEN: "Risør Church"}
	if err := gdb.Create(&venue).Error; err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}
	event := db.Event{
		Slug:    "apningskonsert",
		TitleNO: "Åpningskonsert",
		TitleEN: "Opening Concert",
		Status:  "published",
		VenueID: venue.ID,
		Dates:   []db.EventDate{{StartsAt: time.Date(2026, 6, 23, 19, 30, 0, 0, time.UTC)}},
	}
	if err := gdb.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	handler := router.SetupRouter(router.Options{
		SessionSecret:   "e2e-secret",
		UploadDir:       t.TempDir(),
		UploadURLPath:   "/uploads",
		SiteBaseURL:     "http://kammerfest.local",
		TemplateGlob:    "../../web/template/*/*.html",
		RateLimitMax:    1000,
		RateLimitWindow: time.Minute,
	})

	return &e2eSuite{
		handler: handler,
		public:  newLocalClient(handler, true),
		editor:  newLocalClient(handler, true),
		baseURL: "http://kammerfest.local",
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()

	form := url.Values{}
	form.Set("username", "tester")
	form.Set("password", "passord123")

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/studio/login", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to build login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.editor.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected login redirect, got %d: %s", resp.StatusCode, body)
	}
}

func (s *e2eSuite) get(t *testing.T, client *localClient, path string, headers map[string]string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		t.Fatalf("failed to build request for %s: %v", path, err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request to %s failed: %v", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("failed to read body from %s: %v", path, err)
	}
	return resp, string(body)
}

func (s *e2eSuite) postJSON(t *testing.T, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to build request for %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.editor.Do(req)
	if err != nil {
		t.Fatalf("request to %s failed: %v", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("failed to read body from %s: %v", path, err)
	}
	return resp, body
}

func (s *e2eSuite) testPublicEndpoints(t *testing.T) {
	resp, body := s.get(t, s.public, "/program", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("program page returned %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Åpningskonsert") {
		t.Fatalf("program page missing seeded event")
	}

	resp, body = s.get(t, s.public, "/en/programme", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("english programme returned %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Opening Concert") {
		t.Fatalf("english programme missing translated title")
	}

	resp, body = s.get(t, s.public, "/program/filter?venue=risor-kirke", map[string]string{"HX-Request": "true"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("filter fragment returned %d", resp.StatusCode)
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("fragment should not be a full document")
	}
	if resp.Header.Get("HX-Push-Url") == "" {
		t.Fatalf("fragment response missing HX-Push-Url")
	}

	resp, _ = s.get(t, s.public, "/program/filter?venue=risor-kirke", nil)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("plain filter navigation should redirect, got %d", resp.StatusCode)
	}

	resp, _ = s.get(t, s.public, "/nyheter", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("news page returned %d", resp.StatusCode)
	}

	resp, _ = s.get(t, s.public, "/studio/dashboard", nil)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous studio access should redirect, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testStudioContentFlow(t *testing.T) {
	resp, body := s.postJSON(t, "/studio/api/artists", map[string]any{
		"slug":         "vilde-frang",
		"name":         "Vilde Frang",
		"instrumentNo": "Fiolin",
		"featured":     true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("artist create returned %d: %s", resp.StatusCode, body)
	}
	var artist struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(body, &artist); err != nil {
		t.Fatalf("failed to decode artist: %v", err)
	}

	resp, body = s.postJSON(t, "/studio/api/events", map[string]any{
		"slug":      "kveldskonsert",
		"titleNo":   "Kveldskonsert",
		"status":    "published",
		"venueId":   1,
		"artistIds": []uint{artist.ID},
		"dates": []map[string]any{
			{"startsAt": "2026-06-25T21:00:00Z"},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("event create returned %d: %s", resp.StatusCode, body)
	}

	_, pageBody := s.get(t, s.public, "/program", nil)
	if !strings.Contains(pageBody, "Kveldskonsert") {
		t.Fatalf("new event should appear on the public program")
	}
	if !strings.Contains(pageBody, "Vilde Frang") {
		t.Fatalf("program should list the performing artist")
	}

	resp, body = s.postJSON(t, "/studio/api/events/2/copy-translation", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("copy translation returned %d: %s", resp.StatusCode, body)
	}
	var copied struct {
		TitleEN string `json:"titleEn"`
	}
	if err := json.Unmarshal(body, &copied); err != nil {
		t.Fatalf("failed to decode copy response: %v", err)
	}
	if copied.TitleEN != "Kveldskonsert" {
		t.Fatalf("expected empty English title to be mirrored, got %q", copied.TitleEN)
	}
}

func (s *e2eSuite) testUpload(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="plakat.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create form part: %v", err)
	}
	if _, err := part.Write(pngBuf.Bytes()); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/studio/api/upload", &form)
	if err != nil {
		t.Fatalf("failed to build upload request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.editor.Do(req)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload returned %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Success int `json:"success"`
		Data    struct {
			URL    string `json:"url"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode upload response: %v", err)
	}
	if payload.Success != 1 {
		t.Fatalf("expected success flag, got %s", body)
	}
	if !strings.HasPrefix(payload.Data.URL, "/uploads/") {
		t.Fatalf("unexpected upload URL %q", payload.Data.URL)
	}
	if payload.Data.Width != 4 || payload.Data.Height != 3 {
		t.Fatalf("unexpected dimensions %dx%d", payload.Data.Width, payload.Data.Height)
	}
}
