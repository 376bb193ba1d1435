package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/config"
	"github.com/Zachkp/aurora-portfolio/internal/store"
)

const iphone = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"

var fixedNow = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func testConfig(relay string) config.Server {
	return config.Server{
		Port:          "0",
		StaticDir:     ".",
		ImagesDir:     ".",
		ProfileImages: []string{"does-not-exist.png"},
		ImageTimeout:  100 * time.Millisecond,
		RelayEndpoint: relay,
		Inbox:         "owner@example.com",
		AdminUser:     "admin",
		AdminPass:     "secret",
		HashSalt:      "test",
		Retention:     24 * time.Hour,
	}
}

type fixture struct {
	app *app
	r   *gin.Engine
	st  *store.Store
}

func newFixture(t *testing.T, relay string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(t.Context(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	a, err := newApp(testConfig(relay), st, zap.NewNop())
	require.NoError(t, err)
	a.now = func() time.Time { return fixedNow }
	return &fixture{app: a, r: a.router(), st: st}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHomePage(t *testing.T) {
	f := newFixture(t, "")
	w := f.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Full Stack Developer")
	assert.Contains(t, body, "Terminal Mail")
	assert.Contains(t, body, "theme-dark")
	assert.Contains(t, body, "data:image/svg+xml")
}

func TestPartials(t *testing.T) {
	f := newFixture(t, "")
	for path, want := range map[string]string{
		"/work-content":      Experience[0].Company,
		"/education-content": Education[0].Institution,
		"/contact-form":      "Contact Me",
	} {
		w := f.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), want, path)
	}
}

func TestProfileEndpoint(t *testing.T) {
	f := newFixture(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("User-Agent", iphone)
	got := jsonBody(t, f.do(req))
	assert.Equal(t, true, got["mobile"])
	assert.EqualValues(t, 3, got["threshold"])

	req = httptest.NewRequest(http.MethodGet, "/api/profile?width=1440", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	got = jsonBody(t, f.do(req))
	assert.Equal(t, false, got["mobile"])
	assert.EqualValues(t, 10, got["threshold"])

	req = httptest.NewRequest(http.MethodGet, "/api/profile?width=600", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	assert.Equal(t, true, jsonBody(t, f.do(req))["mobile"])
}

func TestThemePreference(t *testing.T) {
	f := newFixture(t, "")

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/theme", nil))
	assert.Equal(t, "dark", jsonBody(t, w)["theme"])

	req := httptest.NewRequest(http.MethodPost, "/api/theme", strings.NewReader(`{"toggle":true}`))
	req.Header.Set("Content-Type", "application/json")
	w = f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "light", jsonBody(t, w)["theme"])

	w = f.do(httptest.NewRequest(http.MethodGet, "/api/theme", nil))
	assert.Equal(t, "light", jsonBody(t, w)["theme"])

	req = httptest.NewRequest(http.MethodPost, "/api/theme", strings.NewReader(`{"theme":"dark"}`))
	req.Header.Set("Content-Type", "application/json")
	w = f.do(req)
	assert.Equal(t, "dark", jsonBody(t, w)["theme"])

	req = httptest.NewRequest(http.MethodPost, "/api/theme", strings.NewReader(`{"theme":"sepia"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
}

func TestProfileImageFallsBack(t *testing.T) {
	f := newFixture(t, "")
	got := jsonBody(t, f.do(httptest.NewRequest(http.MethodGet, "/api/image", nil)))
	assert.Equal(t, false, got["loaded"])
	assert.True(t, strings.HasPrefix(got["src"].(string), "data:image/svg+xml"))
}

func contactForm(name, email, subject, message string) *http.Request {
	form := url.Values{"name": {name}, "email": {email}, "subject": {subject}, "message": {message}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestContactValidation(t *testing.T) {
	f := newFixture(t, "")

	w := f.do(contactForm("Ada", "", "Hi", "Hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all fields", jsonBody(t, w)["message"])

	w = f.do(contactForm("Ada", "not-an-email", "Hi", "Hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid email address", jsonBody(t, w)["message"])

	msgs, err := f.st.Messages(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestContactRelayed(t *testing.T) {
	var got map[string]string
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer relay.Close()

	f := newFixture(t, relay.URL)
	w := f.do(contactForm("Ada", "ada@example.com", "Hi", "Hello there"))

	require.Equal(t, http.StatusOK, w.Code)
	body := jsonBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.NotContains(t, body, "mailto")
	assert.Equal(t, "ada@example.com", got["_replyto"])

	msgs, err := f.st.Messages(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Delivered)
	assert.Equal(t, "relay", msgs[0].Via)
}

func TestContactFallsBackToMailto(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"form disabled"}`))
	}))
	defer relay.Close()

	f := newFixture(t, relay.URL)
	w := f.do(contactForm("Ada", "ada@example.com", "Hi", "Hello"))

	require.Equal(t, http.StatusOK, w.Code)
	body := jsonBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.True(t, strings.HasPrefix(body["mailto"].(string), "mailto:owner@example.com?"))

	msgs, err := f.st.Messages(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Delivered)
}

func TestContactHTMXFragment(t *testing.T) {
	f := newFixture(t, "")
	req := contactForm("", "", "", "")
	req.Header.Set("HX-Request", "true")
	w := f.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `class="contact-error"`)
}

func TestRecordShow(t *testing.T) {
	f := newFixture(t, "")

	body := `{"profile":"desktop","reason":"timeout","duration_ms":90000,"fireworks":212,"started_at":"2024-06-12T14:58:30Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/shows", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := f.do(req)
	require.Equal(t, http.StatusCreated, w.Code)

	shows, err := f.st.RecentShows(t.Context(), 5)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "timeout", shows[0].Reason)
	assert.Equal(t, 90*time.Second, shows[0].Duration)
	assert.Equal(t, 212, shows[0].Fireworks)

	req = httptest.NewRequest(http.MethodPost, "/api/shows", strings.NewReader(`{"profile":"desktop","reason":"bored","started_at":"2024-06-12T14:58:30Z"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
}

func TestVisitorTracking(t *testing.T) {
	f := newFixture(t, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", iphone)
	f.do(req)

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	f.do(dnt)

	f.do(httptest.NewRequest(http.MethodGet, "/api/theme", nil))
	f.app.bg.Wait()

	visits, err := f.st.RecentVisits(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "/", visits[0].Path)
	assert.True(t, visits[0].Mobile)
	assert.Len(t, visits[0].HashedIP, 16)
	assert.NotContains(t, visits[0].HashedIP, ".")

	w := f.do(httptest.NewRequest(http.MethodPost, "/privacy/forget-me", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, jsonBody(t, w)["removed"])

	visits, err = f.st.RecentVisits(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func login(t *testing.T, f *fixture, pass string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {pass}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func adminRequest(f *fixture, method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: f.app.adminToken})
	return req
}

func TestAdminRequiresLogin(t *testing.T) {
	f := newFixture(t, "")

	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = login(t, f, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = login(t, f, "secret")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "admin_token="+f.app.adminToken)
}

func TestAdminStats(t *testing.T) {
	f := newFixture(t, "")
	ctx := t.Context()
	require.NoError(t, f.st.RecordVisit(ctx, store.Visit{HashedIP: "a", Path: "/", Timestamp: fixedNow.Add(-time.Hour)}))
	require.NoError(t, f.st.RecordVisit(ctx, store.Visit{HashedIP: "b", Path: "/", Mobile: true, Timestamp: fixedNow.Add(-time.Hour)}))
	_, err := f.st.RecordShow(ctx, store.Show{Profile: "mobile", Reason: "manual", Duration: 10 * time.Second, Fireworks: 12, StartedAt: fixedNow})
	require.NoError(t, err)

	w := f.do(adminRequest(f, http.MethodGet, "/admin/api/stats"))
	require.Equal(t, http.StatusOK, w.Code)
	var stats store.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 2, stats.TotalVisitors)
	assert.EqualValues(t, 1, stats.MobileVisitors)
	assert.EqualValues(t, 1, stats.TotalShows)

	w = f.do(adminRequest(f, http.MethodGet, "/admin/dashboard"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total visitors: 2")

	w = f.do(adminRequest(f, http.MethodGet, "/admin/export/stats"))
	assert.Equal(t, "attachment; filename=admin-stats.json", w.Header().Get("Content-Disposition"))
}

func TestAdminMessages(t *testing.T) {
	f := newFixture(t, "")
	id, err := f.st.SaveMessage(t.Context(), store.Message{
		Name: "Ada", Email: "ada@example.com", Subject: "Hello", Body: "Hi", Via: "relay", Delivered: true, CreatedAt: fixedNow,
	})
	require.NoError(t, err)

	w := f.do(adminRequest(f, http.MethodGet, "/admin/messages"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.com")

	path := "/admin/messages/" + strconv.FormatInt(id, 10)
	assert.Equal(t, http.StatusOK, f.do(adminRequest(f, http.MethodDelete, path)).Code)
	assert.Equal(t, http.StatusNotFound, f.do(adminRequest(f, http.MethodDelete, path)).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(adminRequest(f, http.MethodDelete, "/admin/messages/abc")).Code)
}

func TestPrivacyCleanup(t *testing.T) {
	f := newFixture(t, "")
	ctx := t.Context()
	require.NoError(t, f.st.RecordVisit(ctx, store.Visit{HashedIP: "old", Path: "/", Timestamp: fixedNow.Add(-48 * time.Hour)}))
	require.NoError(t, f.st.RecordVisit(ctx, store.Visit{HashedIP: "new", Path: "/", Timestamp: fixedNow.Add(-time.Hour)}))

	w := f.do(adminRequest(f, http.MethodPost, "/admin/privacy/cleanup"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, jsonBody(t, w)["removed"])
}
