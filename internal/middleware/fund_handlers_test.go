package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxiwise/MF_Api.git/internal/models"
)

func fp(v float64) *float64 { return &v }

func testFeedFund() models.FeedFund {
	return models.FeedFund{
		SchemeCode: "120503",
		ISIN:       "INF123456789",
		SchemeName: "Maxiwise Flexi Cap Fund",
		Charts: map[string]models.FeedChart{
			"rolling_returns": {
				Categories: []string{"12m", "36m"},
				Series: []models.FeedSeries{
					{Name: "Fund", Data: []*float64{fp(14.2), fp(17.1)}},
					{Name: "Benchmark", Data: []*float64{fp(11.0), fp(12.4)}},
				},
			},
		},
		MarketCap: &models.FeedCapSplit{SmallCap: 10, MidCap: 25, LargeCap: 65},
		Peers: []models.FeedPeer{
			{SchemeCode: "1", SchemeName: "A", Rating: 4, Return3Y: 15.0},
			{SchemeCode: "2", SchemeName: "B", Rating: 5, Return3Y: 12.0},
			{SchemeCode: "3", SchemeName: "C", Rating: 5, Return3Y: 18.0},
		},
	}
}

func TestBuildFundDataBlocks(t *testing.T) {
	data := buildFundData(testFeedFund())

	require.True(t, data.RollingReturns.Success)
	assert.Equal(t, []string{"1Y", "3Y"}, data.RollingReturns.Data.Categories)

	// charts the feed didn't ship degrade per block, not per page
	assert.False(t, data.PointToPoint.Success)
	assert.False(t, data.Ratios.Success)
	assert.Nil(t, data.Ratios.Data)

	require.True(t, data.MarketCap.Success)
	assert.Equal(t, 65.0, data.MarketCap.Data.LargeCap)

	require.True(t, data.BetterFunds.Success)
}

func TestChartBlockMissingChart(t *testing.T) {
	block := chartBlock(models.FeedFund{}, "rolling_returns")
	assert.False(t, block.Success)
	assert.Nil(t, block.Data)
}

func TestCapBlockMissingSplit(t *testing.T) {
	assert.False(t, capBlock(nil).Success)
}

func TestPicksBlockOrdering(t *testing.T) {
	block := picksBlock(testFeedFund().Peers)
	require.True(t, block.Success)
	require.Len(t, block.Data, 3)

	// best rated first, ties broken by 3y return
	assert.Equal(t, "C", block.Data[0].SchemeName)
	assert.Equal(t, "B", block.Data[1].SchemeName)
	assert.Equal(t, "A", block.Data[2].SchemeName)

	// exactly one default card for the carousel to center
	assert.True(t, block.Data[0].IsDefault)
	assert.False(t, block.Data[1].IsDefault)
	assert.False(t, block.Data[2].IsDefault)
}

func TestPicksBlockEmpty(t *testing.T) {
	block := picksBlock(nil)
	assert.False(t, block.Success)
	assert.Empty(t, block.Data)
}
