package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

// Analytics forwards product events to the analytics sink. Every call
// is a silent no-op when the sink is not configured. Callers are
// expected to check consent first; nothing here reads global state.
type Analytics struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewAnalyticsFromEnv builds the client from ANALYTICS_ENDPOINT and
// ANALYTICS_TOKEN. Missing configuration disables it.
func NewAnalyticsFromEnv() *Analytics {
	endpoint := os.Getenv("ANALYTICS_ENDPOINT")
	if endpoint == "" {
		log.Printf("WARNING: ANALYTICS_ENDPOINT not set, analytics disabled")
	}
	return &Analytics{
		endpoint: endpoint,
		token:    os.Getenv("ANALYTICS_TOKEN"),
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Enabled reports whether a sink is configured.
func (a *Analytics) Enabled() bool {
	return a != nil && a.endpoint != ""
}

// Track sends one named event. Fire-and-forget: failures are logged
// and swallowed.
func (a *Analytics) Track(event string, properties map[string]interface{}) {
	if !a.Enabled() {
		return
	}
	a.send("track", map[string]interface{}{
		"event":      event,
		"properties": properties,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// Identify attaches traits to a user profile.
func (a *Analytics) Identify(userID string, traits map[string]interface{}) {
	if !a.Enabled() {
		return
	}
	a.send("identify", map[string]interface{}{
		"user_id":   userID,
		"traits":    traits,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *Analytics) send(kind string, payload map[string]interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	go func() {
		req, err := http.NewRequest(http.MethodPost, a.endpoint+"/"+kind, bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if a.token != "" {
			req.Header.Set("Authorization", "Bearer "+a.token)
		}
		resp, err := a.client.Do(req)
		if err != nil {
			log.Printf("Analytics event dropped: %v", err)
			return
		}
		resp.Body.Close()
	}()
}
