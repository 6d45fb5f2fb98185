package middleware

import (
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxiwise/MF_Api.git/internal/charts"
	"github.com/maxiwise/MF_Api.git/internal/database"
	"github.com/maxiwise/MF_Api.git/internal/models"
	"github.com/maxiwise/MF_Api.git/internal/repository"
	"github.com/maxiwise/MF_Api.git/internal/services"
)

var fundRepo *repository.FundRepository

func InitFunds() {
	fundRepo = repository.NewFundRepository(database.DB)
}

// GetFundSchemes serves the searchable scheme list. The frontend
// resolves ISINs to internal ids through this before requesting chart
// data, so an empty table is backfilled from the feed here rather than
// returning nothing.
func GetFundSchemes(c *gin.Context) {
	schemes, err := fundRepo.GetAllSchemes()
	if err != nil {
		log.Printf("Error loading schemes: %v", err)
		c.JSON(http.StatusOK, gin.H{"success": false, "data": []models.FundScheme{}})
		return
	}

	if len(schemes) == 0 {
		schemes = importSchemesFromFeed()
	}

	trackPageView(c, "fund_schemes_viewed", map[string]interface{}{"count": len(schemes)})

	c.JSON(http.StatusOK, gin.H{"success": true, "data": schemes})
}

// importSchemesFromFeed backfills the funds table on first use.
func importSchemesFromFeed() []models.FundScheme {
	feedFunds, err := services.GetSchemesFromFeed()
	if err != nil {
		log.Printf("Error backfilling schemes from feed: %v", err)
		return []models.FundScheme{}
	}

	schemes := make([]models.FundScheme, 0, len(feedFunds))
	for _, f := range feedFunds {
		s := models.FundScheme{
			ID:         f.SchemeCode,
			ISIN:       f.ISIN,
			SchemeName: f.SchemeName,
			AMC:        f.AMC,
			Category:   f.Category,
			Rating:     f.Rating,
			Nav:        f.Nav.Value,
			NavDate:    f.Nav.Date,
		}
		if err := fundRepo.UpsertScheme(s); err != nil {
			log.Printf("Error storing scheme %s: %v", f.ISIN, err)
			continue
		}
		schemes = append(schemes, s)
	}
	return schemes
}

// GetChartData serves the full chart payload for one fund. The id
// param is our internal id; an ISIN works too since the detail page
// may only know the ISIN it resolved from the schemes list.
func GetChartData(c *gin.Context) {
	id := c.Param("id")

	scheme, err := fundRepo.GetSchemeByID(id)
	if err != nil {
		scheme, err = fundRepo.GetSchemeByISIN(id)
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "data": nil})
		return
	}

	feedFund, err := services.GetFundFromFeed(scheme.ID)
	if err != nil {
		log.Printf("Error fetching fund %s from feed: %v", scheme.ID, err)
		c.JSON(http.StatusOK, gin.H{"success": false, "data": nil})
		return
	}

	data := buildFundData(feedFund)

	trackPageView(c, "fund_detail_viewed", map[string]interface{}{
		"isin":        scheme.ISIN,
		"scheme_name": scheme.SchemeName,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// buildFundData normalizes every feed chart into its response block.
// A block the feed didn't ship comes back success:false so the client
// degrades per chart instead of per page.
func buildFundData(f models.FeedFund) models.FundData {
	return models.FundData{
		RollingReturns:  chartBlock(f, "rolling_returns"),
		PointToPoint:    chartBlock(f, "point_to_point"),
		Ratios:          chartBlock(f, "ratios"),
		AssetAllocation: chartBlock(f, "asset_allocation"),
		MarketCap:       capBlock(f.MarketCap),
		CreditQuality:   chartBlock(f, "credit_quality"),
		BetterFunds:     picksBlock(f.Peers),
	}
}

func chartBlock(f models.FeedFund, name string) models.ChartBlock {
	raw, exists := f.Charts[name]
	if !exists || len(raw.Categories) == 0 {
		return models.ChartBlock{Success: false}
	}

	series := make([]models.Series, 0, len(raw.Series))
	for _, s := range raw.Series {
		series = append(series, models.Series{Name: s.Name, Data: s.Data})
	}
	ds := charts.BuildDataset(raw.Categories, series)
	return models.ChartBlock{Success: true, Data: &ds}
}

func capBlock(split *models.FeedCapSplit) models.BreakdownBlock {
	if split == nil {
		return models.BreakdownBlock{Success: false}
	}
	return models.BreakdownBlock{
		Success: true,
		Data: &models.CapBreakdown{
			SmallCap: split.SmallCap,
			MidCap:   split.MidCap,
			LargeCap: split.LargeCap,
		},
	}
}

// picksBlock shapes the similar-funds list for the carousel, best
// rated first, with the top pick flagged as the default card the
// carousel centers on mount.
func picksBlock(peers []models.FeedPeer) models.PicksBlock {
	if len(peers) == 0 {
		return models.PicksBlock{Success: false}
	}

	picks := make([]models.FundPick, 0, len(peers))
	for _, p := range peers {
		picks = append(picks, models.FundPick{
			ID:         p.SchemeCode,
			ISIN:       p.ISIN,
			SchemeName: p.SchemeName,
			Category:   p.Category,
			Rating:     p.Rating,
			Return3Y:   p.Return3Y,
		})
	}
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Rating != picks[j].Rating {
			return picks[i].Rating > picks[j].Rating
		}
		return picks[i].Return3Y > picks[j].Return3Y
	})
	picks[0].IsDefault = true

	return models.PicksBlock{Success: true, Data: picks}
}

// GetNav serves the latest NAV for an ISIN: updater cache first, then
// the stored scheme row, then the feed.
func GetNav(c *gin.Context) {
	isin := c.Param("isin")

	if navUpdaterInstance != nil {
		if nav, ok := navUpdaterInstance.GetCachedNav(isin); ok {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": nav})
			return
		}
	}

	if scheme, err := fundRepo.GetSchemeByISIN(isin); err == nil && scheme.Nav > 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": models.NavData{
			NetAssetValue: scheme.Nav,
			Date:          scheme.NavDate,
		}})
		return
	}

	nav, err := services.GetNavFromFeed(isin)
	if err != nil || nav.Value <= 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": models.NavData{
		NetAssetValue: nav.Value,
		Date:          nav.Date,
	}})
}

// GetNavHistory serves stored daily NAV snapshots for sparkline use.
func GetNavHistory(c *gin.Context) {
	id := c.Param("id")
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}

	history, err := fundRepo.GetNavHistory(id, days)
	if err != nil {
		log.Printf("Error loading NAV history for %s: %v", id, err)
		c.JSON(http.StatusOK, gin.H{"success": false, "data": []models.NavSnapshot{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}

// trackPageView emits an analytics event only when the request carries
// cookie consent.
func trackPageView(c *gin.Context, event string, props map[string]interface{}) {
	if analyticsClient == nil || !HasConsent(c) {
		return
	}
	analyticsClient.Track(event, props)
}
