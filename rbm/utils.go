package rbm

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
	"gorgonia.org/vecf32"
)

// dimOf returns the size of a matrix along the axis, or -1 when there is no matrix to ask.
func dimOf(t *tensor.Dense, axis int) int {
	if t == nil || t.Dims() != 2 {
		return -1
	}
	return t.Shape()[axis]
}

// resolveDim picks the size of a layer. A size of 0 is taken from the first supplied dimension.
// Supplied dimensions are -1 when absent.
func resolveDim(name string, size int, supplied ...int) (int, error) {
	for _, d := range supplied {
		if d < 0 {
			continue
		}
		if size == 0 {
			size = d
		}
		if d != size {
			return 0, errors.Errorf("shape mismatch: %s size is %d but a supplied parameter has %d", name, size, d)
		}
	}
	if size == 0 {
		return 0, errors.Errorf("missing %s size: supply either the size or a parameter tensor", name)
	}
	return size, nil
}

func checkParam(name string, t *tensor.Dense, m, n int) error {
	if t == nil {
		return nil
	}
	if t.Dtype() != Float {
		return errors.Errorf("%s has dtype %v, expected %v", name, t.Dtype(), Float)
	}
	if !isMatrix(t, m, n) {
		return errors.Errorf("shape mismatch: %s has shape %v, expected (%d, %d)", name, t.Shape(), m, n)
	}
	return nil
}

// isMatrix compares dimensions one by one. tensor.Shape.Eq treats a vector of n as equal to (1, n).
func isMatrix(t *tensor.Dense, m, n int) bool {
	return t.Dims() == 2 && t.Shape()[0] == m && t.Shape()[1] == n
}

// checkBatch checks that t is a (B, width) batch of Float.
func checkBatch(name string, t *tensor.Dense, width int) error {
	if t == nil {
		return errors.Errorf("%s is nil", name)
	}
	if t.Dtype() != Float {
		return errors.Errorf("%s has dtype %v, expected %v", name, t.Dtype(), Float)
	}
	if t.Dims() != 2 || t.Shape()[1] != width {
		return errors.Errorf("shape mismatch: %s has shape %v, expected (B, %d)", name, t.Shape(), width)
	}
	return nil
}

func rows(t *tensor.Dense) ([][]float32, error) {
	retVal, err := native.MatrixF32(t)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to iterate over rows of %v", t.Shape())
	}
	return retVal, nil
}

// dot is the inner product of a and b. scratch must be as long as a.
func dot(a, b, scratch []float32) float32 {
	copy(scratch, a)
	vecf32.Mul(scratch, b)
	return vecf32.Sum(scratch)
}

func sigmoid(a []float32) {
	for i, x := range a {
		a[i] = 1 / (1 + math32.Exp(-x))
	}
}
