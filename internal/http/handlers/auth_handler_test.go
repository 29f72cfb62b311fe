package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shubhkakadia/cabipro-sub001/internal/auth"
	"github.com/shubhkakadia/cabipro-sub001/internal/config"
	httpserver "github.com/shubhkakadia/cabipro-sub001/internal/http"
	"github.com/shubhkakadia/cabipro-sub001/internal/models"
	"github.com/shubhkakadia/cabipro-sub001/internal/tenant"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "e2e-test-secret",
		SessionTTL:      7 * 24 * time.Hour,
		AdminSessionTTL: 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
		Env:             "development",
	}
}

func newServer(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.Use(tenant.Plugin{}); err != nil {
		t.Fatalf("install plugin: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Admin{},
		&models.Session{},
		&models.AdminSession{},
		&models.Client{},
		&models.Project{},
		&models.Lot{},
		&models.Supplier{},
		&models.PurchaseOrder{},
		&models.AuthAudit{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb, httpserver.NewRouter(gdb, testConfig())
}

func seedOrgWithUser(t *testing.T, db *gorm.DB, slug, email string) models.Organization {
	t.Helper()
	org := models.Organization{Name: slug, Slug: slug, IsActive: true}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("create org: %v", err)
	}
	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		OrgID:        org.ID,
		Email:        email,
		PasswordHash: hash,
		UserType:     models.UserTypeOwner,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return org
}

func seedAdmin(t *testing.T, db *gorm.DB) models.Admin {
	t.Helper()
	hash, err := auth.HashPassword("adminpass123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := models.Admin{
		Email:        "root@platform.test",
		PasswordHash: hash,
		Role:         models.AdminRoleSuper,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email, password string) []*http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_SetsSessionAndCookies(t *testing.T) {
	db, r := newServer(t)
	seedOrgWithUser(t, db, "acme", "owner@acme.test")

	cookies := login(t, r, "owner@acme.test", "password123")

	authCookie := findCookie(cookies, auth.AuthCookieName)
	if authCookie == nil || authCookie.Value == "" {
		t.Fatal("auth-token cookie not set")
	}
	if !authCookie.HttpOnly {
		t.Error("auth-token cookie is not HttpOnly")
	}
	orgCookie := findCookie(cookies, auth.OrgCookieName)
	if orgCookie == nil || orgCookie.Value != "acme" {
		t.Errorf("org-slug cookie = %+v, want acme", orgCookie)
	}

	// Exactly one session row exists and its expiry matches both the
	// cookie Expires and now+TTL.
	var sessions []models.Session
	if err := db.Find(&sessions).Error; err != nil {
		t.Fatalf("load sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("session rows = %d, want 1", len(sessions))
	}
	wantExpiry := time.Now().Add(7 * 24 * time.Hour)
	if diff := sessions[0].ExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Errorf("session expires_at = %v, want ≈ %v", sessions[0].ExpiresAt, wantExpiry)
	}
	if diff := authCookie.Expires.Sub(sessions[0].ExpiresAt); diff < -time.Second || diff > time.Second {
		t.Errorf("cookie Expires = %v, session expires_at = %v, want equal",
			authCookie.Expires, sessions[0].ExpiresAt)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, r := newServer(t)
	seedOrgWithUser(t, db, "acme", "owner@acme.test")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "owner@acme.test", "password": "wrong"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// Login, protected read, then revoke the session row server-side: the
// same still-signed token must be rejected.
func TestProtectedRead_SessionRevocation(t *testing.T) {
	db, r := newServer(t)
	seedOrgWithUser(t, db, "acme", "owner@acme.test")
	cookies := login(t, r, "owner@acme.test", "password123")

	if w := doJSON(t, r, http.MethodGet, "/api/v1/clients", nil, cookies); w.Code != http.StatusOK {
		t.Fatalf("protected read status = %d, body = %s", w.Code, w.Body.String())
	}

	if err := db.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
		t.Fatalf("delete sessions: %v", err)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/v1/clients", nil, cookies); w.Code != http.StatusUnauthorized {
		t.Errorf("post-revocation status = %d, want 401", w.Code)
	}
}

func TestProtectedRead_OrgDeactivation(t *testing.T) {
	db, r := newServer(t)
	org := seedOrgWithUser(t, db, "acme", "owner@acme.test")
	cookies := login(t, r, "owner@acme.test", "password123")

	if err := db.Model(&models.Organization{}).Where("id = ?", org.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate org: %v", err)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/v1/clients", nil, cookies); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

// Two tenants create clients through the API; neither can see the
// other's rows.
func TestTenantIsolation_EndToEnd(t *testing.T) {
	db, r := newServer(t)
	seedOrgWithUser(t, db, "acme", "owner@acme.test")
	seedOrgWithUser(t, db, "globex", "owner@globex.test")

	acme := login(t, r, "owner@acme.test", "password123")
	globex := login(t, r, "owner@globex.test", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/v1/clients",
		map[string]string{"name": "Acme Client"}, acme)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Clients []models.Client `json:"clients"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/clients", nil, globex)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Clients) != 0 {
		t.Errorf("globex sees %d clients, want 0", len(resp.Clients))
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/clients", nil, acme)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	resp.Clients = nil
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Clients) != 1 || resp.Clients[0].Name != "Acme Client" {
		t.Errorf("acme clients = %+v, want exactly the created one", resp.Clients)
	}
}

func TestLogout_RevokesAndClearsCookies(t *testing.T) {
	db, r := newServer(t)
	seedOrgWithUser(t, db, "acme", "owner@acme.test")
	cookies := login(t, r, "owner@acme.test", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	for _, name := range []string{auth.AuthCookieName, auth.AdminAuthCookieName, auth.OrgCookieName} {
		cleared := findCookie(w.Result().Cookies(), name)
		if cleared == nil {
			t.Errorf("logout did not clear %s", name)
			continue
		}
		if cleared.Value != "" || cleared.Expires.After(time.Unix(1, 0)) {
			t.Errorf("%s = %q expiring %v, want empty epoch-expired", name, cleared.Value, cleared.Expires)
		}
	}

	var count int64
	if err := db.Model(&models.Session{}).Count(&count).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 0 {
		t.Errorf("session rows after logout = %d, want 0", count)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/v1/me", nil, cookies); w.Code != http.StatusUnauthorized {
		t.Errorf("post-logout status = %d, want 401", w.Code)
	}
}

func TestAuthStatus_Anonymous(t *testing.T) {
	_, r := newServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/status", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status endpoint = %d, want 200", w.Code)
	}
	var status auth.AuthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.IsAuthenticated || status.RedirectPath != "/login" {
		t.Errorf("anonymous status = %+v", status)
	}
}

func TestAdmin_DeactivateOrganization(t *testing.T) {
	db, r := newServer(t)
	org := seedOrgWithUser(t, db, "acme", "owner@acme.test")
	seedAdmin(t, db)

	userCookies := login(t, r, "owner@acme.test", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/login",
		map[string]string{"email": "root@platform.test", "password": "adminpass123"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin login status = %d, body = %s", w.Code, w.Body.String())
	}
	adminCookies := w.Result().Cookies()

	if w := doJSON(t, r, http.MethodGet, "/api/v1/admin/organizations", nil, adminCookies); w.Code != http.StatusOK {
		t.Fatalf("list orgs status = %d", w.Code)
	}

	path := fmt.Sprintf("/api/v1/admin/organizations/%d/deactivate", org.ID)
	if w := doJSON(t, r, http.MethodPost, path, nil, adminCookies); w.Code != http.StatusOK {
		t.Fatalf("deactivate status = %d, body = %s", w.Code, w.Body.String())
	}

	// The org user's otherwise-valid session now fails.
	if w := doJSON(t, r, http.MethodGet, "/api/v1/clients", nil, userCookies); w.Code != http.StatusUnauthorized {
		t.Errorf("user status after org deactivation = %d, want 401 (session dropped)", w.Code)
	}
}

// Swapping the org-slug cookie for another live org's slug must not grant
// that org's scope: the slug is bound to the session's own organization.
func TestProtectedRead_ForeignOrgCookie(t *testing.T) {
	db, r := newServer(t)
	seedOrgWithUser(t, db, "acme", "owner@acme.test")
	seedOrgWithUser(t, db, "globex", "owner@globex.test")
	cookies := login(t, r, "owner@acme.test", "password123")

	var forged []*http.Cookie
	for _, c := range cookies {
		if c.Name == auth.OrgCookieName {
			forged = append(forged, &http.Cookie{Name: auth.OrgCookieName, Value: "globex"})
			continue
		}
		forged = append(forged, c)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/clients", nil, forged); w.Code != http.StatusUnauthorized {
		t.Errorf("status with foreign org cookie = %d, want 401", w.Code)
	}
}

// Without a valid org-slug cookie the protected API is unreachable even
// with a valid auth token.
func TestProtectedRead_RequiresTenantCookie(t *testing.T) {
	db, r := newServer(t)
	seedOrgWithUser(t, db, "acme", "owner@acme.test")
	cookies := login(t, r, "owner@acme.test", "password123")

	var trimmed []*http.Cookie
	for _, c := range cookies {
		if c.Name != auth.OrgCookieName {
			trimmed = append(trimmed, c)
		}
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/clients", nil, trimmed); w.Code != http.StatusUnauthorized {
		t.Errorf("status without org cookie = %d, want 401", w.Code)
	}
}
