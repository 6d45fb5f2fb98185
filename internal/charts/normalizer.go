package charts

import (
	"strconv"
	"strings"

	"github.com/maxiwise/MF_Api.git/internal/models"
)

// Colors assigned by series role. Unrecognized series fall back to the
// neutral gray pair.
const (
	ColorFund      = "#6C4FF7"
	ColorBenchmark = "#2EC5B6"
	ColorCategory  = "#F5A623"
	ColorNeutral   = "#9CA3AF"

	ValueColorFund      = "#3B2BA5"
	ValueColorBenchmark = "#0F766E"
	ValueColorCategory  = "#B45309"
	ValueColorNeutral   = "#6B7280"
)

// ResolveRole maps a raw series name to its role, case-insensitively.
func ResolveRole(name string) models.SeriesRole {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fund":
		return models.RoleFund
	case "benchmark":
		return models.RoleBenchmark
	case "category":
		return models.RoleCategory
	default:
		return models.RoleUnknown
	}
}

// RoleColors returns the bar color and value-label color for a role.
func RoleColors(role models.SeriesRole) (string, string) {
	switch role {
	case models.RoleFund:
		return ColorFund, ValueColorFund
	case models.RoleBenchmark:
		return ColorBenchmark, ValueColorBenchmark
	case models.RoleCategory:
		return ColorCategory, ValueColorCategory
	default:
		return ColorNeutral, ValueColorNeutral
	}
}

// ConvertPeriodLabel turns provider period keys into the labels the UI
// shows on its time-period chips: "12m" -> "1Y", "3m" -> "3M",
// "ytd" -> "YTD". Unrecognized labels pass through uppercased.
func ConvertPeriodLabel(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch lower {
	case "ytd":
		return "YTD"
	case "si":
		return "SI"
	}
	if strings.HasSuffix(lower, "m") {
		if n, err := strconv.Atoi(strings.TrimSuffix(lower, "m")); err == nil && n > 0 {
			if n%12 == 0 {
				return strconv.Itoa(n/12) + "Y"
			}
			return strconv.Itoa(n) + "M"
		}
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

// BuildDataset normalizes a raw feed chart into the shape the chart
// components consume: converted category labels, role resolved once per
// series, data padded or truncated so every series matches the axis.
func BuildDataset(categories []string, series []models.Series) models.ChartDataset {
	out := models.ChartDataset{
		Categories: make([]string, len(categories)),
		Series:     make([]models.Series, 0, len(series)),
	}
	for i, c := range categories {
		out.Categories[i] = ConvertPeriodLabel(c)
	}
	for _, s := range series {
		norm := models.Series{
			Name: s.Name,
			Role: ResolveRole(s.Name),
			Data: make([]*float64, len(categories)),
		}
		norm.Color, _ = RoleColors(norm.Role)
		for i := range norm.Data {
			if i < len(s.Data) {
				norm.Data[i] = s.Data[i]
			}
		}
		out.Series = append(out.Series, norm)
	}
	return out
}

// Normalize flattens a dataset into one bar per series for the selected
// category. A category that is no longer present (stale chip during a
// refetch) yields zero-value bars instead of an error.
func Normalize(ds models.ChartDataset, selectedCategory string) []models.BarDatum {
	idx := -1
	for i, c := range ds.Categories {
		if c == selectedCategory || ConvertPeriodLabel(c) == ConvertPeriodLabel(selectedCategory) {
			idx = i
			break
		}
	}

	bars := make([]models.BarDatum, 0, len(ds.Series))
	for _, s := range ds.Series {
		role := s.Role
		if role == models.RoleUnknown {
			role = ResolveRole(s.Name)
		}
		color, valueColor := RoleColors(role)

		value := 0.0
		if idx >= 0 && idx < len(s.Data) && s.Data[idx] != nil {
			value = *s.Data[idx]
		}

		bars = append(bars, models.BarDatum{
			Label:        displayLabel(role, s.Name),
			Value:        value,
			Color:        color,
			DisplayValue: FormatAxisValue(value),
			ValueColor:   valueColor,
		})
	}
	return bars
}

func displayLabel(role models.SeriesRole, raw string) string {
	switch role {
	case models.RoleFund:
		return "Fund"
	case models.RoleBenchmark:
		return "Benchmark"
	case models.RoleCategory:
		return "Category"
	default:
		return raw
	}
}
