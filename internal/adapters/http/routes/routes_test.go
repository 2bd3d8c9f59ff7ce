package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"montsion-scolarite/internal/adapters/http/middleware"
	"montsion-scolarite/internal/adapters/persistence/store"
	"montsion-scolarite/internal/config"
	"montsion-scolarite/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "0",
		Data:    config.DataConfig{Dir: t.TempDir()},
		Session: config.SessionConfig{Secret: testSecret, TokenMins: 5},
		Cookie:  config.CookieConfig{SameSite: "lax"},
	}
	config.AppConfig = cfg

	st, err := store.Open(cfg.Data.Dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	config.DataStore = st
	if err := config.NewSeeder(st).Run(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, st, cfg)
	return app
}

func bearerToken(t *testing.T, username, role string) string {
	t.Helper()
	token, err := jwt.GenerateSessionToken(username, role, testSecret, 5)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, target, auth, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var payload map[string]any
	_ = json.Unmarshal(raw, &payload)
	return resp, payload
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected health body: %+v", body)
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/login", "", `{"username":"Kouamé","password":"02910291"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d", resp.StatusCode)
	}
	if body["success"] != true {
		t.Fatalf("login body: %+v", body)
	}
	user := body["user"].(map[string]any)
	if user["username"] != "Kouamé" || user["role"] != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	var sessionCookie bool
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			sessionCookie = true
		}
	}
	if !sessionCookie {
		t.Fatal("no session cookie set")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/login", "", `{"username":"Kouamé","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false: %+v", body)
	}
}

func TestSessionCookieGrantsAccess(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/login", "", `{"username":"directrice","password":"directrice123"}`)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.AddCookie(cookie)
	listResp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("cookie session rejected: %d", listResp.StatusCode)
	}
}

func TestCreateProfileDuplicateIsConflict(t *testing.T) {
	app := newTestApp(t)

	body := `{"username":"alice","password":"pw1","role":"staff"}`
	resp, _ := doJSON(t, app, http.MethodPost, "/api/create-profile", "", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first create: %d", resp.StatusCode)
	}

	resp, payload := doJSON(t, app, http.MethodPost, "/api/create-profile", "", `{"username":"alice","password":"pw2","role":"staff"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if payload["success"] != false {
		t.Fatalf("expected success=false: %+v", payload)
	}

	// First account must still log in with its original password.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/login", "", `{"username":"alice","password":"pw1"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("original password rejected: %d", resp.StatusCode)
	}
}

func TestStudentsRequireAuthentication(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/api/students", "/api/search-students?q=a", "/api/stats", "/api/download-yaml", "/api/export-excel"} {
		resp, _ := doJSON(t, app, http.MethodGet, target, "", "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s without session: expected 401, got %d", target, resp.StatusCode)
		}
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/students/123/payment", "", `{"amount":1000}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("payment without session: expected 401, got %d", resp.StatusCode)
	}
}

func TestStudentCreateListSearch(t *testing.T) {
	app := newTestApp(t)
	auth := bearerToken(t, "secretaire", "staff")

	resp, payload := doJSON(t, app, http.MethodPost, "/api/students", auth, `{"nom":"Koffi","prenoms":"Jean","classe":"CE1"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create: %d", resp.StatusCode)
	}
	student := payload["student"].(map[string]any)
	if student["frais_scolarite"] != float64(70000) || student["montant_paye"] != float64(0) {
		t.Fatalf("tuition defaults wrong: %+v", student)
	}
	if student["classe"] != "CE1" {
		t.Fatalf("extra field dropped: %+v", student)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/students", auth, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: %d", resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/search-students?q=kof", nil)
	req.Header.Set("Authorization", auth)
	searchResp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	raw, _ := io.ReadAll(searchResp.Body)
	var matches []map[string]any
	if err := json.Unmarshal(raw, &matches); err != nil {
		t.Fatalf("decode search: %v (%s)", err, raw)
	}
	if len(matches) != 1 || matches[0]["nom"] != "Koffi" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
}

func TestPaymentEndpoint(t *testing.T) {
	app := newTestApp(t)
	admin := bearerToken(t, "Kouamé", "admin")
	staff := bearerToken(t, "secretaire", "staff")

	_, payload := doJSON(t, app, http.MethodPost, "/api/students", admin, `{"nom":"Koffi","prenoms":"Jean"}`)
	id := int64(payload["student"].(map[string]any)["id"].(float64))
	target := fmt.Sprintf("/api/students/%d/payment", id)

	// staff role is authenticated but not privileged
	resp, _ := doJSON(t, app, http.MethodPost, target, staff, `{"amount":1000}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("staff payment: expected 403, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, target, admin, `{"amount":30000}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payment 1: %d", resp.StatusCode)
	}
	resp, payload = doJSON(t, app, http.MethodPost, target, admin, `{"amount":50000}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payment 2: %d", resp.StatusCode)
	}
	student := payload["student"].(map[string]any)
	if student["montant_paye"] != float64(80000) || student["reste_a_payer"] != float64(-10000) {
		t.Fatalf("unexpected balance: %+v", student)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/students/999999/payment", admin, `{"amount":1000}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown student: expected 404, got %d", resp.StatusCode)
	}
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t)
	admin := bearerToken(t, "Kouamé", "admin")
	staff := bearerToken(t, "secretaire", "staff")

	for _, amount := range []int{10000, 20000, 70000} {
		_, payload := doJSON(t, app, http.MethodPost, "/api/students", admin, `{"nom":"Koffi","prenoms":"Jean"}`)
		id := int64(payload["student"].(map[string]any)["id"].(float64))
		resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/students/%d/payment", id), admin, fmt.Sprintf(`{"amount":%d}`, amount))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("payment: %d", resp.StatusCode)
		}
	}

	resp, stats := doJSON(t, app, http.MethodGet, "/api/stats", admin, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: %d", resp.StatusCode)
	}
	if stats["total_students"] != float64(3) || stats["total_expected"] != float64(210000) ||
		stats["total_collected"] != float64(100000) || stats["total_remaining"] != float64(110000) {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/stats", staff, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("staff stats: expected 403, got %d", resp.StatusCode)
	}
}

func TestDownloadEndpoints(t *testing.T) {
	app := newTestApp(t)
	admin := bearerToken(t, "directrice", "admin")

	if _, payload := doJSON(t, app, http.MethodPost, "/api/students", admin, `{"nom":"Koffi","prenoms":"Jean"}`); payload["success"] != true {
		t.Fatalf("create failed: %+v", payload)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/download-yaml", nil)
	req.Header.Set("Authorization", admin)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/yaml") {
		t.Fatalf("content type: %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "mont-sion-students.yaml") {
		t.Fatalf("content disposition: %q", cd)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "students:") {
		t.Fatalf("yaml body: %q", raw)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/export-excel", nil)
	req.Header.Set("Authorization", admin)
	resp, err = app.Test(req, 5000)
	if err != nil {
		t.Fatalf("excel: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("excel: %d", resp.StatusCode)
	}
	raw, _ = io.ReadAll(resp.Body)
	if len(raw) < 4 || raw[0] != 'P' || raw[1] != 'K' {
		t.Fatal("excel body is not a workbook")
	}
}

func TestMeAndLogout(t *testing.T) {
	app := newTestApp(t)
	auth := bearerToken(t, "directrice", "admin")

	resp, body := doJSON(t, app, http.MethodGet, "/api/me", auth, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: %d", resp.StatusCode)
	}
	if body["user"].(map[string]any)["username"] != "directrice" {
		t.Fatalf("unexpected me body: %+v", body)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/logout", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: %d", resp.StatusCode)
	}
}
