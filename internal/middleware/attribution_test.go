package middleware

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

func attributionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Attribution())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/consent", SetConsent)
	return r
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAttributionSetsTouchCookies(t *testing.T) {
	r := attributionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?utm_source=google&utm_campaign=launch", nil)
	r.ServeHTTP(w, req)

	resp := w.Result()
	first := cookieByName(resp, FirstTouchCookie)
	last := cookieByName(resp, LastTouchCookie)
	require.NotNil(t, first)
	require.NotNil(t, last)

	// gin query-escapes cookie values on the way out
	value, err := url.QueryUnescape(first.Value)
	require.NoError(t, err)
	assert.Equal(t, "utm_source=google&utm_campaign=launch", value)
	assert.Equal(t, first.Value, last.Value)
	assert.Equal(t, attributionMaxAge, first.MaxAge)
}

func TestAttributionFirstTouchIsWriteOnce(t *testing.T) {
	r := attributionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?utm_source=facebook", nil)
	req.AddCookie(&http.Cookie{Name: FirstTouchCookie, Value: "utm_source=google"})
	r.ServeHTTP(w, req)

	resp := w.Result()
	// the original campaign survives, only last-touch moves
	assert.Nil(t, cookieByName(resp, FirstTouchCookie))
	last := cookieByName(resp, LastTouchCookie)
	require.NotNil(t, last)
	value, err := url.QueryUnescape(last.Value)
	require.NoError(t, err)
	assert.Equal(t, "utm_source=facebook", value)
}

func TestAttributionWithoutUTMLeavesTouchCookiesAlone(t *testing.T) {
	r := attributionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	resp := w.Result()
	assert.Nil(t, cookieByName(resp, FirstTouchCookie))
	assert.Nil(t, cookieByName(resp, LastTouchCookie))
	// visit marker is set on every request
	assert.NotNil(t, cookieByName(resp, LastVisitCookie))
}

func TestAttributionSessionCookie(t *testing.T) {
	r := attributionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	session := cookieByName(w.Result(), SessionCookie)
	require.NotNil(t, session)
	assert.Equal(t, 0, session.MaxAge)

	// an existing session cookie is not reissued
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "1"})
	r.ServeHTTP(w, req)
	assert.Nil(t, cookieByName(w.Result(), SessionCookie))
}

func TestSetConsent(t *testing.T) {
	r := attributionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/consent", strings.NewReader(`{"accepted":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	consent := cookieByName(w.Result(), ConsentCookie)
	require.NotNil(t, consent)
	assert.Equal(t, "accepted", consent.Value)
	assert.NotNil(t, cookieByName(w.Result(), ConsentAtCookie))
}

func TestHasConsent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	check := func(cookie *http.Cookie) bool {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != nil {
			c.Request.AddCookie(cookie)
		}
		return HasConsent(c)
	}

	assert.False(t, check(nil))
	assert.False(t, check(&http.Cookie{Name: ConsentCookie, Value: "rejected"}))
	assert.True(t, check(&http.Cookie{Name: ConsentCookie, Value: "accepted"}))
}

func TestUTMFieldsDecoding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{
		Name:  LastTouchCookie,
		Value: "utm_source=google&utm_medium=cpc",
	})

	fields := UTMFields(c, LastTouchCookie)
	assert.Equal(t, map[string]string{
		"utm_source": "google",
		"utm_medium": "cpc",
	}, fields)

	assert.Nil(t, UTMFields(c, FirstTouchCookie))
}
