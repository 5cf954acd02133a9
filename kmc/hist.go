package kmc

// Pair is a (bin center, value) point of a binned dataset.
type Pair struct {
	X, Y float64
}

// Bin is one bin of an integer-count histogram.
type Bin struct {
	Center float64
	Count  int
}

// CalculateHist bins integer data into a histogram with the given bin size.
// Bins cover [min, max] of the data; the center of bin i is
// min + i*binSize + (binSize-1)/2. Returns nil for empty data or a
// non-positive bin size.
func CalculateHist(data []int, binSize int) []Bin {
	if len(data) == 0 || binSize < 1 {
		return nil
	}
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	nBins := (hi-lo)/binSize + 1
	hist := make([]Bin, nBins)
	for i := range hist {
		hist[i].Center = float64(lo+i*binSize) + float64(binSize-1)/2.0
	}
	for _, v := range data {
		hist[(v-lo)/binSize].Count++
	}
	return hist
}
