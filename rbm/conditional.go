package rbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// HGivenV returns P(h = 1 | v) = σ(vW + b_h), with shape (B, Hidden).
//
// v may hold soft activations in [0, 1]. No sampling is done.
func (r *RBM) HGivenV(v *tensor.Dense) (*tensor.Dense, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if err := checkBatch("v", v, r.Visible); err != nil {
		return nil, err
	}
	return affineSigmoid(v, r.Coupling(), r.HiddenBias())
}

// VGivenH returns P(v = 1 | h) = σ(hWᵀ + b_v), with shape (B, Visible).
//
// It uses the same W as HGivenV, transposed.
func (r *RBM) VGivenH(h *tensor.Dense) (*tensor.Dense, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if err := checkBatch("h", h, r.Hidden); err != nil {
		return nil, err
	}
	wT, err := tensor.Transpose(r.Coupling())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to transpose W")
	}
	return affineSigmoid(h, wT.(*tensor.Dense), r.VisibleBias())
}

// affineSigmoid computes σ(xW + b) where b is a (1, n) row added to every row of xW.
func affineSigmoid(x, w, b *tensor.Dense) (*tensor.Dense, error) {
	retVal, err := x.MatMul(w)
	if err != nil {
		return nil, errors.Wrapf(err, "affine failed - xW")
	}
	rs, err := rows(retVal)
	if err != nil {
		return nil, err
	}
	bias := b.Data().([]float32)
	for _, row := range rs {
		vecf32.Add(row, bias)
	}
	sigmoid(retVal.Data().([]float32))
	return retVal, nil
}
