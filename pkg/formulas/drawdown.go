package formulas

// DrawdownMetrics represents drawdown analysis over a NAV history
type DrawdownMetrics struct {
	MaxDrawdown     float64 // deepest peak-to-trough loss as positive fraction (0.25 = 25%)
	CurrentDrawdown float64 // drawdown of the latest NAV from its preceding peak
	DaysSincePeak   int     // observations since the all-time-high NAV
	PeakNAV         float64
	LatestNAV       float64
}

// CalculateDrawdown walks an ascending NAV history and reports the deepest
// drawdown together with the position of the latest NAV relative to its peak.
//
//	Drawdown = (Peak NAV - NAV) / Peak NAV
//
// Returns nil for histories shorter than two observations.
func CalculateDrawdown(navs []float64) *DrawdownMetrics {
	if len(navs) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := navs[0]
	peakIndex := 0

	for i, v := range navs {
		if v > peak {
			peak = v
			peakIndex = i
		}

		if peak > 0 {
			drawdown := (peak - v) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	latest := navs[len(navs)-1]
	current := 0.0
	if peak > 0 {
		current = (peak - latest) / peak
	}

	return &DrawdownMetrics{
		MaxDrawdown:     maxDrawdown,
		CurrentDrawdown: current,
		DaysSincePeak:   len(navs) - 1 - peakIndex,
		PeakNAV:         peak,
		LatestNAV:       latest,
	}
}
