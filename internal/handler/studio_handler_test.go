package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func loginEditor(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("username", "tester")
	form.Set("password", "passord123")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/studio/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func addCookies(req *http.Request, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()

	r := newTestRouter(t)

	form := url.Values{}
	form.Set("username", "tester")
	form.Set("password", "feil-passord")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/studio/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Feil brukernavn eller passord") {
		t.Fatalf("expected login error message")
	}
}

func TestLoginSessionCookieUsableOverPlainHTTP(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()

	r := newTestRouter(t)
	cookies := loginEditor(t, r)

	var session *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == "kammerfest_session" {
			session = cookie
		}
	}
	if session == nil {
		t.Fatalf("login did not set a session cookie")
	}
	// A Secure cookie would never be replayed by a browser over the
	// local http:// deployments the studio runs on.
	if session.Secure {
		t.Fatalf("session cookie marked Secure without an https base URL")
	}
	if !session.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if session.Path != "/" {
		t.Fatalf("unexpected cookie path %q", session.Path)
	}
	if session.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected SameSite mode %v", session.SameSite)
	}
}

func TestStudioRequiresSession(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()

	r := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/studio/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/studio/login" {
		t.Fatalf("unexpected redirect target %q", got)
	}
}

func TestDashboardShowsEditor(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()
	seedFestival(t)

	r := newTestRouter(t)
	cookies := loginEditor(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/studio/dashboard", nil)
	addCookies(req, cookies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tester") {
		t.Fatalf("expected dashboard to name the editor")
	}
}

func TestCreateEventViaStudioAPI(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()
	seedFestival(t)

	r := newTestRouter(t)
	cookies := loginEditor(t, r)

	payload := map[string]any{
		"slug":    "avslutningskonsert",
		"titleNo": "Avslutningskonsert",
		"status":  "published",
		"venueId": 1,
		"dates": []map[string]any{
			{"startsAt": "2026-06-28T18:00:00Z"},
		},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/studio/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addCookies(req, cookies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created["slug"] != "avslutningskonsert" {
		t.Fatalf("unexpected slug %v", created["slug"])
	}
}

func TestCreateEventRejectsBadSlug(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()
	seedFestival(t)

	r := newTestRouter(t)
	cookies := loginEditor(t, r)

	body, _ := json.Marshal(map[string]any{"slug": "Ugyldig Slug", "titleNo": "Test", "venueId": 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/studio/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addCookies(req, cookies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Ugyldig slug") {
		t.Fatalf("expected slug validation message")
	}
}

func TestCreateEventRejectsDuplicateSlug(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()
	seedFestival(t)

	r := newTestRouter(t)
	cookies := loginEditor(t, r)

	body, _ := json.Marshal(map[string]any{"slug": "apningskonsert", "titleNo": "Kopi", "venueId": 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/studio/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addCookies(req, cookies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestCopyEventTranslationKeepsExistingEnglish(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()
	seedFestival(t)

	r := newTestRouter(t)
	cookies := loginEditor(t, r)

	// Seeded event 1 already has an English title; the copy must not
	// overwrite it.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/studio/api/events/1/copy-translation", nil)
	addCookies(req, cookies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var event map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &event); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if event["titleEn"] != "Opening Concert" {
		t.Fatalf("existing English title was overwritten: %v", event["titleEn"])
	}
}

func TestStudioAPIRequiresSession(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()
	seedFestival(t)

	r := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/studio/api/events", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
}

func TestMaintenanceCleanupEndpoint(t *testing.T) {
	cleanup := setupHandlerTestDB(t)
	defer cleanup()
	seedFestival(t)

	r := newTestRouter(t)
	cookies := loginEditor(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/studio/api/maintenance/cleanup-refs", nil)
	addCookies(req, cookies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Report map[string]any `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if _, ok := payload.Report["danglingArtistLinks"]; !ok {
		t.Fatalf("expected cleanup report fields, got %v", payload.Report)
	}
}
