package mpi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/1713175349/KMC-Lattice/kmc"
)

// Number constrains the element types the gathers and sums operate on.
type Number interface {
	~int | ~float64
}

// binSpacingTol is the tolerance for comparing histogram bin spacings.
const binSpacingTol = 1e-6

// maxUnionBins bounds the union grid so a pathological spacing cannot size
// an unbounded buffer.
const maxUnionBins = 1 << 26

// GatherValues collects one value from each rank. Rank 0 receives a vector
// of length Size with rank i's value at index i; other ranks receive nil.
func GatherValues[T Number](c *Comm, v T) ([]T, error) {
	return gather(c, 0, v), nil
}

// GatherVectors concatenates per-rank vectors in rank order on rank 0.
// Per-rank lengths may differ. Other ranks receive nil.
func GatherVectors[T Number](c *Comm, v []T) ([]T, error) {
	parts := gather(c, 0, cloneSlice(v))
	if c.Rank() != 0 {
		return nil, nil
	}
	total := 0
	for _, part := range parts {
		total += len(part)
	}
	out := make([]T, 0, total)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out, nil
}

// checkEqualLengths verifies that every rank supplied the same vector
// length. The verdict is broadcast so all ranks fail together.
func checkEqualLengths(c *Comm, n int) error {
	lens := gather(c, 0, n)
	ok := true
	if c.Rank() == 0 {
		for _, l := range lens {
			if l != lens[0] {
				ok = false
				break
			}
		}
	}
	if !bcast(c, 0, ok) {
		return fmt.Errorf("%w: rank %d: vector lengths differ across ranks", kmc.ErrLengthMismatch, c.Rank())
	}
	return nil
}

// CalcVectorSum computes the element-wise sum across ranks on rank 0. All
// ranks must supply vectors of equal length.
func CalcVectorSum[T Number](c *Comm, v []T) ([]T, error) {
	if err := checkEqualLengths(c, len(v)); err != nil {
		return nil, err
	}
	parts := gather(c, 0, cloneSlice(v))
	if c.Rank() != 0 {
		return nil, nil
	}
	sum := make([]T, len(v))
	for _, part := range parts {
		for i, x := range part {
			sum[i] += x
		}
	}
	return sum, nil
}

// CalcVectorAvg computes the element-wise mean across ranks on rank 0. All
// ranks must supply vectors of equal length.
func CalcVectorAvg(c *Comm, v []float64) ([]float64, error) {
	if err := checkEqualLengths(c, len(v)); err != nil {
		return nil, err
	}
	parts := gather(c, 0, cloneSlice(v))
	if c.Rank() != 0 {
		return nil, nil
	}
	avg := make([]float64, len(v))
	for _, part := range parts {
		floats.Add(avg, part)
	}
	floats.Scale(1.0/float64(c.Size()), avg)
	return avg, nil
}

// binHeader describes one rank's binned input for alignment checking.
type binHeader struct {
	n       int
	spacing float64
	lo, hi  float64
	uniform bool
}

// verdict codes broadcast after alignment checking.
const (
	binsOK = iota
	binsInvalid
	binsUnsized
)

func pairHeader(n int, x func(int) float64) binHeader {
	hdr := binHeader{n: n, uniform: true}
	if n < 2 {
		return hdr
	}
	hdr.spacing = x(1) - x(0)
	hdr.lo, hdr.hi = x(0), x(n-1)
	for i := 2; i < n; i++ {
		if !scalar.EqualWithinAbs(x(i)-x(i-1), hdr.spacing, binSpacingTol) {
			hdr.uniform = false
			break
		}
	}
	return hdr
}

// checkBinAlignment gathers per-rank bin descriptions, validates them on
// rank 0, and broadcasts the verdict. The union grid (lo, spacing, bin
// count) is returned on rank 0 only; other ranks receive zeros. Every rank
// returns the same error on failure, so no rank is left blocked.
func checkBinAlignment(c *Comm, hdr binHeader) (float64, float64, int, error) {
	headers := gather(c, 0, hdr)
	code := binsOK
	var grid [2]float64 // lo, spacing
	var n int
	if c.Rank() == 0 {
		sp := headers[0].spacing
		lo, hi := headers[0].lo, headers[0].hi
		for _, h := range headers {
			if h.n < 2 || !h.uniform || !scalar.EqualWithinAbs(h.spacing, sp, binSpacingTol) {
				code = binsInvalid
				break
			}
			lo = math.Min(lo, h.lo)
			hi = math.Max(hi, h.hi)
		}
		if code == binsOK {
			bins := int(math.Round((hi-lo)/sp)) + 1
			if bins < 1 || bins > maxUnionBins {
				code = binsUnsized
			} else {
				grid = [2]float64{lo, sp}
				n = bins
			}
		}
	}
	code = bcast(c, 0, code)
	switch code {
	case binsInvalid:
		return 0, 0, 0, fmt.Errorf("%w: rank %d: need at least 2 entries and equal bin spacing on every rank", kmc.ErrInvalidArgument, c.Rank())
	case binsUnsized:
		return 0, 0, 0, fmt.Errorf("%w: rank %d: cannot size union histogram buffer", kmc.ErrAllocation, c.Rank())
	}
	return grid[0], grid[1], n, nil
}

// CalcPairVectorAvg averages (bin center, value) vectors across ranks on a
// common grid. Each rank must supply at least 2 entries with constant bin
// spacing equal across ranks. The rank 0 result covers the union of
// per-rank bin ranges; bins missing on a rank contribute 0, and the value
// field is divided by the number of ranks.
func CalcPairVectorAvg(c *Comm, data []kmc.Pair) ([]kmc.Pair, error) {
	hdr := pairHeader(len(data), func(i int) float64 { return data[i].X })
	lo, spacing, nBins, err := checkBinAlignment(c, hdr)
	if err != nil {
		return nil, err
	}
	parts := gather(c, 0, cloneSlice(data))
	if c.Rank() != 0 {
		return nil, nil
	}
	out := make([]kmc.Pair, nBins)
	for i := range out {
		out[i].X = lo + float64(i)*spacing
	}
	for _, part := range parts {
		for _, p := range part {
			out[int(math.Round((p.X-lo)/spacing))].Y += p.Y
		}
	}
	for i := range out {
		out[i].Y /= float64(c.Size())
	}
	return out, nil
}

// CalcProbHistAvg combines per-rank count histograms into a probability
// histogram on rank 0: counts are summed on the union grid and normalized
// by the total count, so the values sum to 1. Preconditions and bin
// alignment rules match CalcPairVectorAvg.
func CalcProbHistAvg(c *Comm, hist []kmc.Bin) ([]kmc.Pair, error) {
	hdr := pairHeader(len(hist), func(i int) float64 { return hist[i].Center })
	lo, spacing, nBins, err := checkBinAlignment(c, hdr)
	if err != nil {
		return nil, err
	}
	parts := gather(c, 0, cloneSlice(hist))
	if c.Rank() != 0 {
		return nil, nil
	}
	counts := make([]int, nBins)
	total := 0
	for _, part := range parts {
		for _, b := range part {
			counts[int(math.Round((b.Center-lo)/spacing))] += b.Count
			total += b.Count
		}
	}
	out := make([]kmc.Pair, nBins)
	for i := range out {
		out[i].X = lo + float64(i)*spacing
		if total > 0 {
			out[i].Y = float64(counts[i]) / float64(total)
		}
	}
	return out, nil
}
