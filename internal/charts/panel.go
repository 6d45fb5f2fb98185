package charts

import "github.com/maxiwise/MF_Api.git/internal/models"

// Tab names used by the fund-detail panels.
const (
	TabRiskVolatility = "Risk & Volatility"
	TabTradeOffRatios = "Trade-Off Ratios"
	TabMarketCycle    = "Market Cycle"
	TabOutperformance = "Outperformance"
)

// Rect is a measured bounding box.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Measure resolves a rendered element to its bounding box. Injected so
// the panel logic runs without a real layout engine; ok is false when
// the element is not attached.
type Measure func(elementID string) (rect Rect, ok bool)

// Tab is one selectable metric group of a chart panel.
type Tab struct {
	Name    string
	Metrics []string
}

// Panel holds the local UI state of one chart panel: the active tab,
// the hover cursor and the tooltip anchor. Idle state is hovered == -1.
type Panel struct {
	tabs      []Tab
	measure   Measure
	activeTab int
	hovered   int
	tooltip   Rect
}

// NewPanel starts in the first tab, Idle.
func NewPanel(tabs []Tab, measure Measure) *Panel {
	return &Panel{tabs: tabs, measure: measure, hovered: -1}
}

// ActiveTab returns the currently selected tab.
func (p *Panel) ActiveTab() Tab {
	if len(p.tabs) == 0 {
		return Tab{}
	}
	return p.tabs[p.activeTab]
}

// SelectTab switches the active tab and resets hover state, so a stale
// cursor can never point at a metric index the new tab doesn't have.
func (p *Panel) SelectTab(index int) {
	if index < 0 || index >= len(p.tabs) {
		return
	}
	p.activeTab = index
	p.hovered = -1
	p.tooltip = Rect{}
}

// PointerEnter transitions into Hovering(metricIndex). The tooltip
// anchor is re-measured on every entry rather than cached, so it tracks
// the current layout.
func (p *Panel) PointerEnter(metricIndex int, elementID string) {
	tab := p.ActiveTab()
	if metricIndex < 0 || metricIndex >= len(tab.Metrics) {
		return
	}
	p.hovered = metricIndex
	if p.measure != nil {
		if rect, ok := p.measure(elementID); ok {
			p.tooltip = rect
		}
	}
}

// PointerLeave returns the panel to Idle.
func (p *Panel) PointerLeave() {
	p.hovered = -1
	p.tooltip = Rect{}
}

// Hovered reports the hovered metric index, if any.
func (p *Panel) Hovered() (int, bool) {
	if p.hovered < 0 {
		return 0, false
	}
	return p.hovered, true
}

// TooltipRect is the anchor measured on the last transition into
// Hovering.
func (p *Panel) TooltipRect() Rect {
	return p.tooltip
}

// DisplayBars applies the presentation policy for the current tab. The
// Outperformance tab carries no Benchmark series; its Category values
// stand in for Benchmark in legend and tooltip, and the separate
// Category bar is dropped so the same numbers aren't shown twice. The
// substitution is purely presentational and never touches the dataset.
func (p *Panel) DisplayBars(bars []models.BarDatum) []models.BarDatum {
	if p.ActiveTab().Name != TabOutperformance {
		return bars
	}
	out := make([]models.BarDatum, 0, len(bars))
	seenCategory := false
	for _, b := range bars {
		switch b.Label {
		case "Category":
			if seenCategory {
				continue
			}
			seenCategory = true
			// Category takes the slot Benchmark occupies in other tabs.
			b.Color = ColorBenchmark
			b.ValueColor = ValueColorBenchmark
			out = append(out, b)
		case "Benchmark":
			// this tab has no Benchmark series
			continue
		default:
			out = append(out, b)
		}
	}
	return out
}

// LegendLabels returns the legend rows for the current tab, applying
// the same Outperformance substitution.
func (p *Panel) LegendLabels(bars []models.BarDatum) []string {
	labels := make([]string, 0, len(bars))
	for _, b := range p.DisplayBars(bars) {
		labels = append(labels, b.Label)
	}
	return labels
}
