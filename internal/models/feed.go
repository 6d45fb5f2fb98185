package models

import "encoding/json"

// Types mirroring the upstream fund-data provider's JSON. Kept separate
// from our own response models so provider renames don't leak outward.

func UnmarshalFeedFund(data []byte) (FeedFund, error) {
	var r FeedFund
	err := json.Unmarshal(data, &r)
	return r, err
}

// FeedFund is the provider's per-fund document.
type FeedFund struct {
	SchemeCode string               `json:"scheme_code"`
	ISIN       string               `json:"isin"`
	SchemeName string               `json:"scheme_name"`
	AMC        string               `json:"fund_house"`
	Category   string               `json:"scheme_category"`
	Rating     int                  `json:"rating"`
	Nav        FeedNav              `json:"nav"`
	Charts     map[string]FeedChart `json:"charts"`
	MarketCap  *FeedCapSplit        `json:"market_cap,omitempty"`
	Peers      []FeedPeer           `json:"peers,omitempty"`
}

// FeedNav is the provider's NAV quote.
type FeedNav struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// FeedChart is one named dataset as the provider ships it.
type FeedChart struct {
	Categories []string     `json:"categories"`
	Series     []FeedSeries `json:"series"`
}

// FeedSeries carries raw values; null entries mean no data for that bucket.
type FeedSeries struct {
	Name string     `json:"name"`
	Data []*float64 `json:"data"`
}

// FeedCapSplit is the provider's market-cap composition.
type FeedCapSplit struct {
	SmallCap float64 `json:"small_cap"`
	MidCap   float64 `json:"mid_cap"`
	LargeCap float64 `json:"large_cap"`
}

// FeedPeer is one entry of the provider's similar-funds list.
type FeedPeer struct {
	SchemeCode string  `json:"scheme_code"`
	ISIN       string  `json:"isin"`
	SchemeName string  `json:"scheme_name"`
	Category   string  `json:"scheme_category"`
	Rating     int     `json:"rating"`
	Return3Y   float64 `json:"return_3y"`
}
