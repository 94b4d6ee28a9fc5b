package scroll

// FixedExtentIndex maps offsets to indices for equal-extent cells.
type FixedExtentIndex struct {
	Extent int
	Count  func() int
}

// TotalExtent returns the content extent for all cells.
func (f FixedExtentIndex) TotalExtent() int {
	if f.Extent <= 0 {
		return 0
	}
	count := f.count()
	if count < 0 {
		count = 0
	}
	return f.Extent * count
}

// IndexForOffset returns the cell index containing the offset.
func (f FixedExtentIndex) IndexForOffset(offset float64) int {
	if f.Extent <= 0 || offset <= 0 {
		return 0
	}
	index := int(offset) / f.Extent
	maxIndex := f.count() - 1
	if maxIndex < 0 {
		maxIndex = 0
	}
	if index > maxIndex {
		index = maxIndex
	}
	return index
}

// OffsetForIndex returns the resting offset for the given cell index.
func (f FixedExtentIndex) OffsetForIndex(index int) float64 {
	if f.Extent <= 0 || index <= 0 {
		return 0
	}
	count := f.count()
	if count <= 0 {
		return 0
	}
	if index >= count {
		index = count - 1
	}
	return float64(index * f.Extent)
}

func (f FixedExtentIndex) count() int {
	if f.Count == nil {
		return 0
	}
	return f.Count()
}
