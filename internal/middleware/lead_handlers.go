package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxiwise/MF_Api.git/internal/services"
)

// SubmitLead forwards a marketing form submission to the CRM with the
// visitor's attribution attached. Best-effort: the visitor always gets
// a success response, failures only show up in the logs.
func SubmitLead(c *gin.Context) {
	var lead services.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// last-touch wins for lead scoring; first-touch fills the gaps
	utm := UTMFields(c, LastTouchCookie)
	if utm == nil {
		utm = UTMFields(c, FirstTouchCookie)
	}
	lead.UTMFields = utm

	if crmClient != nil {
		go func() {
			if err := crmClient.SubmitLead(lead); err != nil {
				log.Printf("Lead submission failed for %s: %v", lead.Email, err)
			}
		}()
	}

	if analyticsClient != nil && HasConsent(c) {
		analyticsClient.Track("lead_submitted", map[string]interface{}{
			"page_uri": lead.PageURI,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thanks, we'll be in touch"})
}
