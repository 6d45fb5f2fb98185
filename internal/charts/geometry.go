package charts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/maxiwise/MF_Api.git/internal/models"
)

// ReferenceMax picks the scaling maximum for a bar group: the explicit
// max when one is given, otherwise the largest value in the set, with a
// fallback of 1 so an all-zero set never divides by zero.
func ReferenceMax(values []float64, explicitMax float64) float64 {
	if !math.IsNaN(explicitMax) && explicitMax > 0 {
		return explicitMax
	}
	max := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}

// BarHeight scales a value into pixels. Zero, negative and NaN values
// render as zero height; values above the reference clamp to the full
// chart height.
func BarHeight(value, referenceMax, chartHeight float64) float64 {
	if math.IsNaN(value) || value <= 0 || chartHeight <= 0 {
		return 0
	}
	if math.IsNaN(referenceMax) || referenceMax <= 0 {
		referenceMax = 1
	}
	h := value / referenceMax * chartHeight
	if h > chartHeight {
		return chartHeight
	}
	return h
}

// SegmentHeights splits a stacked bar's height proportionally to each
// segment's share of the stack total.
func SegmentHeights(segments []models.BarSegment, chartHeight float64) []float64 {
	heights := make([]float64, len(segments))
	total := 0.0
	for _, s := range segments {
		if !math.IsNaN(s.Value) && s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 || chartHeight <= 0 {
		return heights
	}
	for i, s := range segments {
		if !math.IsNaN(s.Value) && s.Value > 0 {
			heights[i] = s.Value / total * chartHeight
		}
	}
	return heights
}

// Fixed ladder of axis ceilings for the ratio charts. Values above the
// ladder round up to the next multiple of 5.
var yAxisLadder = []float64{
	0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.8, 1.0,
	1.2, 1.5, 2.0, 2.5, 3.0, 4.0, 5.0, 6.0, 8.0, 10.0,
}

// NiceYAxisMax selects the axis ceiling for a raw maximum value.
func NiceYAxisMax(rawMax float64) float64 {
	if math.IsNaN(rawMax) || rawMax <= 0 {
		return yAxisLadder[0]
	}
	for _, step := range yAxisLadder {
		if rawMax <= step {
			return step
		}
	}
	return math.Ceil(rawMax/5) * 5
}

// YAxisLabels returns exactly 5 evenly spaced labels from the ceiling
// down to 0.
func YAxisLabels(axisMax float64) []string {
	labels := make([]string, 5)
	for i := 0; i < 5; i++ {
		labels[i] = FormatAxisValue(axisMax * float64(4-i) / 4)
	}
	return labels
}

// FormatAxisValue renders a value without redundant trailing zeros.
// Magnitudes below 1e-5 collapse to "0".
func FormatAxisValue(v float64) string {
	if math.IsNaN(v) || math.Abs(v) < 1e-5 {
		return "0"
	}
	// round away float noise from the 4-way axis division
	v = math.Round(v*1e6) / 1e6
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DoughnutPart is one slice of a breakdown before geometry is applied.
type DoughnutPart struct {
	Name  string
	Value float64
	Color string
}

// DoughnutSegments turns an ordered breakdown into renderable ring
// segments: cumulative angles starting at -90° (12 o'clock) proceeding
// clockwise, SVG arc paths between outer radius R and inner radius r,
// label anchors at the mid angle. A NaN or non-positive total yields no
// segments (zero state).
func DoughnutSegments(parts []DoughnutPart, cx, cy, outerR, innerR float64) []models.DoughnutSegment {
	total := 0.0
	for _, p := range parts {
		if !math.IsNaN(p.Value) && p.Value > 0 {
			total += p.Value
		}
	}
	if total <= 0 || math.IsNaN(total) {
		return nil
	}

	segments := make([]models.DoughnutSegment, 0, len(parts))
	start := -90.0
	for _, p := range parts {
		if math.IsNaN(p.Value) || p.Value <= 0 {
			continue
		}
		angle := p.Value / total * 360
		mid := start + angle/2
		labelR := (outerR + innerR) / 2

		var path string
		if angle >= 359.99 {
			// A single part covering the whole ring: a naive arc whose
			// start and end coincide draws nothing, so emit two half
			// circles instead.
			path = fullRingPath(cx, cy, outerR, innerR, start)
		} else {
			path = arcPath(cx, cy, outerR, innerR, start, start+angle)
		}

		segments = append(segments, models.DoughnutSegment{
			Name:       p.Name,
			Value:      p.Value,
			Color:      p.Color,
			Percentage: int(math.Round(p.Value / total * 100)),
			PathData:   path,
			MidAngle:   mid,
			LabelX:     cx + labelR*math.Cos(mid*math.Pi/180),
			LabelY:     cy + labelR*math.Sin(mid*math.Pi/180),
		})
		start += angle
	}
	return segments
}

// arcPath builds the standard ring-segment path: move to the outer
// start, arc clockwise to the outer end, line to the inner end, arc
// back to the inner start, close.
func arcPath(cx, cy, outerR, innerR, startDeg, endDeg float64) string {
	largeArc := 0
	if endDeg-startDeg > 180 {
		largeArc = 1
	}
	sox, soy := pointOnCircle(cx, cy, outerR, startDeg)
	eox, eoy := pointOnCircle(cx, cy, outerR, endDeg)
	eix, eiy := pointOnCircle(cx, cy, innerR, endDeg)
	six, siy := pointOnCircle(cx, cy, innerR, startDeg)
	return fmt.Sprintf(
		"M %.3f %.3f A %.3f %.3f 0 %d 1 %.3f %.3f L %.3f %.3f A %.3f %.3f 0 %d 0 %.3f %.3f Z",
		sox, soy, outerR, outerR, largeArc, eox, eoy,
		eix, eiy, innerR, innerR, largeArc, six, siy,
	)
}

// fullRingPath draws a complete ring as two half arcs per radius.
func fullRingPath(cx, cy, outerR, innerR, startDeg float64) string {
	half := startDeg + 180
	full := startDeg + 360
	sox, soy := pointOnCircle(cx, cy, outerR, startDeg)
	hox, hoy := pointOnCircle(cx, cy, outerR, half)
	fox, foy := pointOnCircle(cx, cy, outerR, full)
	six, siy := pointOnCircle(cx, cy, innerR, startDeg)
	hix, hiy := pointOnCircle(cx, cy, innerR, half)
	fix, fiy := pointOnCircle(cx, cy, innerR, full)
	return fmt.Sprintf(
		"M %.3f %.3f A %.3f %.3f 0 1 1 %.3f %.3f A %.3f %.3f 0 1 1 %.3f %.3f Z "+
			"M %.3f %.3f A %.3f %.3f 0 1 0 %.3f %.3f A %.3f %.3f 0 1 0 %.3f %.3f Z",
		sox, soy, outerR, outerR, hox, hoy, outerR, outerR, fox, foy,
		six, siy, innerR, innerR, hix, hiy, innerR, innerR, fix, fiy,
	)
}

func pointOnCircle(cx, cy, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

// CapDoughnut builds the market-cap allocation ring in display order:
// large, mid, small.
func CapDoughnut(b models.CapBreakdown, cx, cy, outerR, innerR float64) []models.DoughnutSegment {
	return DoughnutSegments([]DoughnutPart{
		{Name: "Large Cap", Value: b.LargeCap, Color: ColorFund},
		{Name: "Mid Cap", Value: b.MidCap, Color: ColorBenchmark},
		{Name: "Small Cap", Value: b.SmallCap, Color: ColorCategory},
	}, cx, cy, outerR, innerR)
}
