package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxiwise/MF_Api.git/internal/models"
)

func testTabs() []Tab {
	return []Tab{
		{Name: TabRiskVolatility, Metrics: []string{"Std Dev", "Beta", "Max Drawdown"}},
		{Name: TabTradeOffRatios, Metrics: []string{"Sharpe", "Sortino"}},
		{Name: TabOutperformance, Metrics: []string{"Alpha"}},
	}
}

func TestPanelStartsIdleOnFirstTab(t *testing.T) {
	p := NewPanel(testTabs(), nil)
	assert.Equal(t, TabRiskVolatility, p.ActiveTab().Name)
	_, hovering := p.Hovered()
	assert.False(t, hovering)
}

func TestPanelHoverTransitions(t *testing.T) {
	measured := Rect{X: 10, Y: 20, Width: 120, Height: 48}
	p := NewPanel(testTabs(), func(id string) (Rect, bool) {
		return measured, true
	})

	p.PointerEnter(1, "metric-1")
	idx, hovering := p.Hovered()
	require.True(t, hovering)
	assert.Equal(t, 1, idx)
	assert.Equal(t, measured, p.TooltipRect())

	p.PointerLeave()
	_, hovering = p.Hovered()
	assert.False(t, hovering)
	assert.Equal(t, Rect{}, p.TooltipRect())
}

func TestPanelHoverOutOfRangeIgnored(t *testing.T) {
	p := NewPanel(testTabs(), nil)
	p.PointerEnter(7, "metric-7")
	_, hovering := p.Hovered()
	assert.False(t, hovering)

	p.PointerEnter(-1, "metric")
	_, hovering = p.Hovered()
	assert.False(t, hovering)
}

func TestPanelHoverRemeasuresEachEntry(t *testing.T) {
	calls := 0
	p := NewPanel(testTabs(), func(id string) (Rect, bool) {
		calls++
		return Rect{X: float64(calls)}, true
	})

	p.PointerEnter(0, "metric-0")
	p.PointerLeave()
	p.PointerEnter(0, "metric-0")

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2.0, p.TooltipRect().X)
}

func TestPanelUnattachedElementKeepsAnchor(t *testing.T) {
	p := NewPanel(testTabs(), func(id string) (Rect, bool) {
		return Rect{}, false
	})
	p.PointerEnter(0, "gone")
	idx, hovering := p.Hovered()
	require.True(t, hovering)
	assert.Equal(t, 0, idx)
	assert.Equal(t, Rect{}, p.TooltipRect())
}

func TestSelectTabResetsHover(t *testing.T) {
	p := NewPanel(testTabs(), func(id string) (Rect, bool) {
		return Rect{Width: 50}, true
	})
	p.PointerEnter(2, "metric-2")

	// the second tab only has 2 metrics, so a carried-over cursor of 2
	// would point past its end
	p.SelectTab(1)
	assert.Equal(t, TabTradeOffRatios, p.ActiveTab().Name)
	_, hovering := p.Hovered()
	assert.False(t, hovering)
	assert.Equal(t, Rect{}, p.TooltipRect())
}

func TestSelectTabOutOfRangeIgnored(t *testing.T) {
	p := NewPanel(testTabs(), nil)
	p.SelectTab(9)
	assert.Equal(t, TabRiskVolatility, p.ActiveTab().Name)
	p.SelectTab(-1)
	assert.Equal(t, TabRiskVolatility, p.ActiveTab().Name)
}

func outperformanceBars() []models.BarDatum {
	return []models.BarDatum{
		{Label: "Fund", Value: 14, Color: ColorFund, ValueColor: ValueColorFund},
		{Label: "Benchmark", Value: 0, Color: ColorBenchmark, ValueColor: ValueColorBenchmark},
		{Label: "Category", Value: 11, Color: ColorCategory, ValueColor: ValueColorCategory},
	}
}

func TestDisplayBarsOutperformanceSubstitution(t *testing.T) {
	p := NewPanel(testTabs(), nil)
	p.SelectTab(2)

	bars := p.DisplayBars(outperformanceBars())
	require.Len(t, bars, 2)

	assert.Equal(t, "Fund", bars[0].Label)

	// Category stands in for Benchmark, wearing its colors
	assert.Equal(t, "Category", bars[1].Label)
	assert.Equal(t, 11.0, bars[1].Value)
	assert.Equal(t, ColorBenchmark, bars[1].Color)
	assert.Equal(t, ValueColorBenchmark, bars[1].ValueColor)
}

func TestDisplayBarsOutperformanceDedupesCategory(t *testing.T) {
	p := NewPanel(testTabs(), nil)
	p.SelectTab(2)

	in := append(outperformanceBars(), models.BarDatum{Label: "Category", Value: 11})
	bars := p.DisplayBars(in)

	count := 0
	for _, b := range bars {
		if b.Label == "Category" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDisplayBarsOtherTabsUnchanged(t *testing.T) {
	p := NewPanel(testTabs(), nil)
	in := outperformanceBars()
	bars := p.DisplayBars(in)
	assert.Equal(t, in, bars)
}

func TestLegendLabels(t *testing.T) {
	p := NewPanel(testTabs(), nil)
	assert.Equal(t, []string{"Fund", "Benchmark", "Category"}, p.LegendLabels(outperformanceBars()))

	p.SelectTab(2)
	assert.Equal(t, []string{"Fund", "Category"}, p.LegendLabels(outperformanceBars()))
}
