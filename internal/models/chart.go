package models

// SeriesRole identifies which line of a comparison a series belongs to.
// Resolved once at normalization time instead of re-matching names on
// every render.
type SeriesRole int

const (
	RoleUnknown SeriesRole = iota
	RoleFund
	RoleBenchmark
	RoleCategory
)

// Series is a named, ordered sequence of values aligned to a shared
// category axis. A nil entry means "no data for this bucket".
type Series struct {
	Name  string     `json:"name"`
	Data  []*float64 `json:"data"`
	Color string     `json:"color,omitempty"`
	Role  SeriesRole `json:"-"`
}

// ChartDataset is the normalized shape all chart components consume.
// Every series shares the one category axis.
type ChartDataset struct {
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

// BarSegment is one slice of a stacked bar.
type BarSegment struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// BarDatum is a single renderable bar. When Segments is present the
// bar is a stack and Value is ignored for height purposes.
type BarDatum struct {
	Label        string       `json:"label"`
	Value        float64      `json:"value"`
	Color        string       `json:"color"`
	DisplayValue string       `json:"display_value,omitempty"`
	ValueColor   string       `json:"value_color,omitempty"`
	Segments     []BarSegment `json:"segments,omitempty"`
}

// DoughnutSegment is one wedge of a ring chart, already carrying the
// SVG arc path and label anchor the frontend needs.
type DoughnutSegment struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Percentage int     `json:"percentage"`
	PathData   string  `json:"path_data"`
	MidAngle   float64 `json:"mid_angle"`
	LabelX     float64 `json:"label_x"`
	LabelY     float64 `json:"label_y"`
}

// ChartBlock wraps one dataset of the fund-detail payload so a single
// bad dataset degrades alone instead of failing the whole response.
type ChartBlock struct {
	Success bool          `json:"success"`
	Data    *ChartDataset `json:"data,omitempty"`
}

// CapBreakdown is the 3-way composition behind the allocation doughnut.
type CapBreakdown struct {
	SmallCap float64 `json:"smallCap"`
	MidCap   float64 `json:"midCap"`
	LargeCap float64 `json:"largeCap"`
}

// BreakdownBlock wraps a composition breakdown the same way ChartBlock
// wraps a series dataset.
type BreakdownBlock struct {
	Success bool          `json:"success"`
	Data    *CapBreakdown `json:"data,omitempty"`
}

// FundPick is one card of the "better funds" carousel.
type FundPick struct {
	ID         string  `json:"id"`
	ISIN       string  `json:"isin"`
	SchemeName string  `json:"scheme_name"`
	Category   string  `json:"category"`
	Rating     int     `json:"rating"`
	Return3Y   float64 `json:"return_3y"`
	IsDefault  bool    `json:"is_default"`
}

// PicksBlock wraps the carousel cards.
type PicksBlock struct {
	Success bool       `json:"success"`
	Data    []FundPick `json:"data,omitempty"`
}

// FundData is the full chart payload for one fund. Block names match
// what the web client expects.
type FundData struct {
	RollingReturns  ChartBlock     `json:"rollingReturns"`
	PointToPoint    ChartBlock     `json:"pointToPoint"`
	Ratios          ChartBlock     `json:"ratios"`
	AssetAllocation ChartBlock     `json:"assetAllocation"`
	MarketCap       BreakdownBlock `json:"marketCap"`
	CreditQuality   ChartBlock     `json:"creditQuality"`
	BetterFunds     PicksBlock     `json:"betterFunds"`
}
