package ising

import (
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// EncodeSpins maps occupations in [0, 1] to Ising spins in [-1, 1]: 1 is up, 0 is down.
func EncodeSpins(a []float32, prealloc []float32) []float32 {
	if len(prealloc) != len(a) {
		prealloc = make([]float32, len(a))
	}
	for i := range a {
		switch a[i] {
		case 1:
			prealloc[i] = 1
		case 0:
			prealloc[i] = -1
		default:
			prealloc[i] = 2*a[i] - 1
		}
	}
	return prealloc
}

// DecodeSpins maps Ising spins in [-1, 1] back to occupations in [0, 1].
func DecodeSpins(a []float32, prealloc []float32) []float32 {
	if len(prealloc) != len(a) {
		prealloc = make([]float32, len(a))
	}
	copy(prealloc, a)
	for i := range prealloc {
		prealloc[i]++
	}
	vecf32.Scale(prealloc, 0.5)
	return prealloc
}

// Magnetization is the mean spin of a configuration of occupations.
func Magnetization(a []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	return vecf32.Sum(EncodeSpins(a, nil)) / float32(len(a))
}

// Lattice lays a flat configuration out as rows of width spins. The last row may be short.
// The rows share the backing of a.
func Lattice(a []float32, width int) ([][]float32, error) {
	if width <= 0 {
		return nil, errors.Errorf("cannot lay out %d spins in rows of %d", len(a), width)
	}
	var retVal [][]float32
	for start := 0; start < len(a); start += width {
		end := start + width
		if end > len(a) {
			end = len(a)
		}
		retVal = append(retVal, a[start:end:end])
	}
	return retVal, nil
}
