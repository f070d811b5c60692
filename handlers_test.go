package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return newRouter(NewReviewStore(newMemStorage()))
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHomePageRenders(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Portfolio")
	assert.Contains(t, w.Body.String(), "Sarah Mitchell", "seeded reviews render on the home page")
}

func TestReviewsPanelShowsSeeds(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Sarah Mitchell")
	assert.Contains(t, body, "David Okafor")
	assert.Contains(t, body, "Emily Tran")
}

func TestSubmitReviewWithoutRating(t *testing.T) {
	r := newTestRouter(t)

	w := postForm(r, "/reviews", url.Values{
		"reviewer-name": {"Alice"},
		"review-text":   {"Nice"},
		"rating":        {"0"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "select a star rating")
	assert.NotContains(t, w.Body.String(), "review-card")
}

func TestSubmitReviewSuccess(t *testing.T) {
	r := newTestRouter(t)

	w := postForm(r, "/reviews", url.Values{
		"reviewer-name": {"Alice"},
		"reviewer-role": {""},
		"review-text":   {"Nice"},
		"rating":        {"5"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Client", "blank role defaults to Client")
	assert.Contains(t, body, "★★★★★")
	assert.Contains(t, body, "review-card-new", "fresh cards carry the entry highlight")
}

func TestSubmitReviewEscapesMarkup(t *testing.T) {
	r := newTestRouter(t)

	w := postForm(r, "/reviews", url.Values{
		"reviewer-name": {"<b>X</b>"},
		"rating":        {"4"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "&lt;b&gt;X&lt;/b&gt;")
	assert.NotContains(t, w.Body.String(), "<b>X</b>")
}

func TestPortfolioFilter(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portfolio-content?filter=terminal", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Terminal Email Client")
	assert.NotContains(t, w.Body.String(), "Game Recommender")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portfolio-content", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Terminal Email Client")
	assert.Contains(t, w.Body.String(), "Game Recommender")
}

func TestContactFormFragment(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact-form", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Contact Me")
}

func TestContactSubmitWithoutSMTPConfig(t *testing.T) {
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASS", "")
	r := newTestRouter(t)

	w := postForm(r, "/contact", url.Values{
		"fullName": {"Bob"},
		"email":    {"bob@example.com"},
		"message":  {"Hello"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "error sending your message")
}

func TestAdminDashboardRequiresAuth(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}
