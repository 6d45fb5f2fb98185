package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// Lead is a marketing form submission forwarded to the CRM.
type Lead struct {
	Email     string            `json:"email" binding:"required,email"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	PageURI   string            `json:"page_uri"`
	UTMFields map[string]string `json:"utm_fields,omitempty"`
}

// CRMClient submits leads to the forms endpoint of the CRM. Best-effort
// telemetry: failures are logged, never surfaced to the user.
type CRMClient struct {
	endpoint string
	portalID string
	formID   string
	client   *http.Client
}

// NewCRMClientFromEnv reads the fixed portal/form identifiers from the
// environment. A client without an endpoint no-ops.
func NewCRMClientFromEnv() *CRMClient {
	return &CRMClient{
		endpoint: os.Getenv("CRM_FORMS_ENDPOINT"),
		portalID: os.Getenv("CRM_PORTAL_ID"),
		formID:   os.Getenv("CRM_FORM_ID"),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SubmitLead posts the lead, retrying once on a server error. Client
// errors (4xx) are not retried: the payload won't get better.
func (c *CRMClient) SubmitLead(lead Lead) error {
	if c.endpoint == "" || c.portalID == "" || c.formID == "" {
		log.Printf("CRM not configured, dropping lead for %s", lead.Email)
		return nil
	}

	payload := map[string]interface{}{
		"portalId": c.portalID,
		"formId":   c.formID,
		"fields": map[string]interface{}{
			"email":     lead.Email,
			"name":      lead.Name,
			"phone":     lead.Phone,
			"page_uri":  lead.PageURI,
			"utmFields": lead.UTMFields,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/%s", c.endpoint, c.portalID, c.formID)

	status, err := c.post(url, body)
	if err == nil && status < 400 {
		return nil
	}
	if status >= 400 && status < 500 {
		log.Printf("CRM rejected lead for %s with status %d", lead.Email, status)
		return fmt.Errorf("crm rejected lead: status %d", status)
	}

	// one retry on 5xx or transport failure
	log.Printf("CRM submission failed (status %d, err %v), retrying once", status, err)
	status, err = c.post(url, body)
	if err != nil {
		log.Printf("CRM retry failed for %s: %v", lead.Email, err)
		return err
	}
	if status >= 400 {
		log.Printf("CRM retry rejected lead for %s with status %d", lead.Email, status)
		return fmt.Errorf("crm retry failed: status %d", status)
	}
	return nil
}

func (c *CRMClient) post(url string, body []byte) (int, error) {
	resp, err := c.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
