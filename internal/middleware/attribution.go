package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Fixed storage keys. Existing visitors carry these names already, so
// they must not change.
const (
	ConsentCookie     = "maxiwise_cookie_consent"
	ConsentAtCookie   = "maxiwise_cookie_consent_at"
	LastVisitCookie   = "maxiwise_last_visit"
	SessionCookie     = "maxiwise_session_started"
	FirstTouchCookie  = "maxiwise_utm_first"
	LastTouchCookie   = "maxiwise_utm_last"
	attributionMaxAge = 30 * 24 * 60 * 60 // 30 days
)

var utmParams = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content"}

// HasConsent reports whether this request carries an accepted cookie
// consent. Everything analytics-shaped must check it first.
func HasConsent(c *gin.Context) bool {
	consent, err := c.Cookie(ConsentCookie)
	return err == nil && consent == "accepted"
}

// SetConsent records the visitor's consent decision with a timestamp.
func SetConsent(c *gin.Context) {
	var body struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	value := "rejected"
	if body.Accepted {
		value = "accepted"
	}
	c.SetCookie(ConsentCookie, value, attributionMaxAge, "/", "", false, false)
	c.SetCookie(ConsentAtCookie, fmt.Sprintf("%d", time.Now().Unix()), attributionMaxAge, "/", "", false, false)

	c.JSON(http.StatusOK, gin.H{"message": "Consent stored", "consent": value})
}

// Attribution captures first-touch and last-touch UTM parameters on
// every request that carries them, plus visit/session markers.
// First-touch is write-once; last-touch always reflects the most
// recent campaign.
func Attribution() gin.HandlerFunc {
	return func(c *gin.Context) {
		utm := collectUTM(c)
		if utm != "" {
			if _, err := c.Cookie(FirstTouchCookie); err != nil {
				c.SetCookie(FirstTouchCookie, utm, attributionMaxAge, "/", "", false, true)
			}
			c.SetCookie(LastTouchCookie, utm, attributionMaxAge, "/", "", false, true)
		}

		c.SetCookie(LastVisitCookie, fmt.Sprintf("%d", time.Now().Unix()), attributionMaxAge, "/", "", false, true)

		// session flag: no MaxAge makes it a session cookie
		if _, err := c.Cookie(SessionCookie); err != nil {
			c.SetCookie(SessionCookie, "1", 0, "/", "", false, true)
		}

		c.Next()
	}
}

// collectUTM serializes the request's UTM query params in a stable
// order, empty when none are present.
func collectUTM(c *gin.Context) string {
	out := ""
	for _, p := range utmParams {
		v := c.Query(p)
		if v == "" {
			continue
		}
		if out != "" {
			out += "&"
		}
		out += p + "=" + v
	}
	return out
}

// UTMFields decodes a stored attribution cookie back into a map for
// CRM submissions.
func UTMFields(c *gin.Context, cookieName string) map[string]string {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	fields := map[string]string{}
	for _, pair := range strings.Split(raw, "&") {
		if k, v, found := strings.Cut(pair, "="); found {
			fields[k] = v
		}
	}
	return fields
}
