package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/maxiwise/MF_Api.git/internal/models"
)

// Cache of per-fund feed documents to cut calls to the provider.
var (
	feedCache   = make(map[string]cachedFund)
	feedCacheMu sync.RWMutex
)

type cachedFund struct {
	Fund      models.FeedFund
	Timestamp time.Time
}

const feedCacheTTL = 5 * time.Minute

func feedBaseURL() string {
	base := os.Getenv("FUND_FEED_URL")
	if base == "" {
		base = "https://api.mfdata.in/v1"
	}
	return base
}

// GetFundFromFeed fetches the full per-fund document from the upstream
// provider, serving a cached copy when it is less than five minutes old.
func GetFundFromFeed(schemeCode string) (models.FeedFund, error) {
	feedCacheMu.RLock()
	cached, exists := feedCache[schemeCode]
	feedCacheMu.RUnlock()
	if exists && time.Since(cached.Timestamp) < feedCacheTTL {
		return cached.Fund, nil
	}

	endpoint := fmt.Sprintf("%s/funds/%s?api_key=%s",
		feedBaseURL(), url.PathEscape(schemeCode), os.Getenv("FUND_FEED_API_KEY"))

	resp, err := http.Get(endpoint)
	if err != nil {
		log.Printf("Error fetching fund %s from feed: %v", schemeCode, err)
		return models.FeedFund{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Feed returned status %d for fund %s", resp.StatusCode, schemeCode)
		return models.FeedFund{}, fmt.Errorf("feed status %d for fund %s", resp.StatusCode, schemeCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading feed response for %s: %v", schemeCode, err)
		return models.FeedFund{}, err
	}

	fund, err := models.UnmarshalFeedFund(body)
	if err != nil {
		log.Printf("Error parsing feed JSON for %s: %v", schemeCode, err)
		return models.FeedFund{}, err
	}

	feedCacheMu.Lock()
	feedCache[schemeCode] = cachedFund{Fund: fund, Timestamp: time.Now()}
	feedCacheMu.Unlock()

	return fund, nil
}

// GetNavFromFeed fetches just the latest NAV quote for an ISIN.
func GetNavFromFeed(isin string) (models.FeedNav, error) {
	endpoint := fmt.Sprintf("%s/nav/%s?api_key=%s",
		feedBaseURL(), url.PathEscape(isin), os.Getenv("FUND_FEED_API_KEY"))

	resp, err := http.Get(endpoint)
	if err != nil {
		log.Printf("Error fetching NAV for %s: %v", isin, err)
		return models.FeedNav{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.FeedNav{}, fmt.Errorf("feed status %d for NAV %s", resp.StatusCode, isin)
	}

	var result struct {
		Nav models.FeedNav `json:"nav"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Error parsing NAV JSON for %s: %v", isin, err)
		return models.FeedNav{}, err
	}
	return result.Nav, nil
}

// GetSchemesFromFeed fetches the provider's full scheme list.
func GetSchemesFromFeed() ([]models.FeedFund, error) {
	endpoint := fmt.Sprintf("%s/funds?api_key=%s", feedBaseURL(), os.Getenv("FUND_FEED_API_KEY"))

	resp, err := http.Get(endpoint)
	if err != nil {
		log.Printf("Error fetching scheme list from feed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed status %d for scheme list", resp.StatusCode)
	}

	var result struct {
		Funds []models.FeedFund `json:"funds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Error parsing scheme list JSON: %v", err)
		return nil, err
	}
	return result.Funds, nil
}

// InvalidateFeedCache drops every cached fund document. Used by the
// admin refresh endpoint.
func InvalidateFeedCache() {
	feedCacheMu.Lock()
	feedCache = make(map[string]cachedFund)
	feedCacheMu.Unlock()
}
