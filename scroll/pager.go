package scroll

import "math"

// FadeEpsilon is the threshold under which a fade-out percent is
// treated as zero and no event is emitted.
const FadeEpsilon = 1e-6

// PercentIndex expresses a scroll offset in units of one cell extent.
func PercentIndex(offset float64, extent int) float64 {
	if extent <= 0 {
		return 0
	}
	return offset / float64(extent)
}

// VisibleIndices returns the cell indices eligible for display at the
// given percent index. At most two indices are ever visible: the pair
// straddled by the fractional position, or a single resting cell at
// either end.
func VisibleIndices(count int, percent float64) []int {
	if count <= 0 {
		return nil
	}
	if count == 1 || percent <= 0 {
		return []int{0}
	}
	if percent >= float64(count-1) {
		return []int{count - 1}
	}
	lo := int(math.Floor(percent))
	hi := int(math.Ceil(percent))
	if lo == hi {
		return []int{lo}
	}
	return []int{lo, hi}
}

// IsRestingBoundary reports whether the index is pinned at an end of
// the content: the first cell while the position is at or before the
// start, or the last cell while at or past the end.
func IsRestingBoundary(index, count int, percent float64) bool {
	if count <= 0 {
		return false
	}
	if index == 0 && percent <= 0 {
		return true
	}
	return index == count-1 && percent >= float64(count-1)
}

// CellOrigin returns a visible cell's y origin in content coordinates.
// Resting boundary cells pin to their resting position; every other
// visible cell tracks the live offset directly.
func CellOrigin(index, count, extent int, offset float64) int {
	percent := PercentIndex(offset, extent)
	if IsRestingBoundary(index, count, percent) {
		return index * extent
	}
	return int(math.Floor(offset))
}

// FadeInPercent returns the signed fade-in percent for a cell exactly
// one index away from current. The magnitude closes toward 1 as the
// cell approaches its resting position; values are clamped to ±1 at
// the extremes. The second return is false for cells that are not
// fade-in candidates.
func FadeInPercent(index, current int, percent float64) (float64, bool) {
	gap := index - current
	if gap != 1 && gap != -1 {
		return 0, false
	}
	value := percent - float64(current)
	if value > 1 {
		value = 1
	}
	if value < -1 {
		value = -1
	}
	return value, true
}

// FadeOutPercent returns the fade-out percent for the current cell.
// The second return is false when no event should be emitted: a
// magnitude at or below FadeEpsilon, or beyond one full cell.
func FadeOutPercent(current int, percent float64) (float64, bool) {
	value := percent - float64(current)
	if math.Abs(value) <= FadeEpsilon || math.Abs(value) > 1 {
		return 0, false
	}
	return value, true
}

// TransitionPercent returns the fractional progress between the top
// visible cell and the one below it.
func TransitionPercent(percent float64) float64 {
	_, frac := math.Modf(percent)
	if frac < 0 {
		frac += 1
	}
	return frac
}

// SnapIndex resolves the resting index for the given visible set: the
// first (minimum) visible index.
func SnapIndex(visible []int) (int, bool) {
	if len(visible) == 0 {
		return 0, false
	}
	return visible[0], true
}

// ClosestIndex clamps previous into [lo, hi]. It picks the nearest
// in-bounds value to the previous index so the tracked current index
// drifts no further than the visible bounds force it to.
func ClosestIndex(previous, lo, hi int) int {
	if previous < lo {
		return lo
	}
	if previous > hi {
		return hi
	}
	return previous
}
