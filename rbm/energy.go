package rbm

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Hamiltonian returns the energy of every joint configuration (v, h) in the batch:
//
//	E(v, h) = -(v W hᵀ + v·b_vᵀ + h·b_hᵀ)
//
// v is (B, Visible) and h is (B, Hidden). The result has shape (B).
func (r *RBM) Hamiltonian(v, h *tensor.Dense) (*tensor.Dense, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if err := checkBatch("v", v, r.Visible); err != nil {
		return nil, err
	}
	if err := checkBatch("h", h, r.Hidden); err != nil {
		return nil, err
	}
	batches := v.Shape()[0]
	if h.Shape()[0] != batches {
		return nil, errors.Errorf("shape mismatch: v has %d rows, h has %d", batches, h.Shape()[0])
	}

	vw, err := v.MatMul(r.Coupling())
	if err != nil {
		return nil, errors.Wrapf(err, "hamiltonian failed - vW")
	}
	defer tensor.ReturnTensor(vw)

	var vs, hs, vws [][]float32
	if vs, err = rows(v); err != nil {
		return nil, err
	}
	if hs, err = rows(h); err != nil {
		return nil, err
	}
	if vws, err = rows(vw); err != nil {
		return nil, err
	}
	bv := r.VisibleBias().Data().([]float32)
	bh := r.HiddenBias().Data().([]float32)

	vScratch := make([]float32, r.Visible)
	hScratch := make([]float32, r.Hidden)
	energies := make([]float32, batches)
	for b := range energies {
		coupling := dot(vws[b], hs[b], hScratch)
		energies[b] = -(coupling + dot(vs[b], bv, vScratch) + dot(hs[b], bh, hScratch))
	}
	return tensor.New(tensor.WithShape(batches), tensor.WithBacking(energies)), nil
}

// fwd builds the differentiable energy over BatchSize rows.
func (r *RBM) fwd() error {
	r.v = G.NewMatrix(r.g, Float, G.WithShape(r.BatchSize, r.Visible), G.WithName("v"))
	r.h = G.NewMatrix(r.g, Float, G.WithShape(r.BatchSize, r.Hidden), G.WithName("h"))

	var m maebe
	r.energy = m.hamiltonian(r.v, r.h, r.vBias, r.hBias, r.w)
	if m.err != nil {
		return m.err
	}
	G.Read(r.energy, &r.energyValue)
	return nil
}

func (r *RBM) bwd() error {
	if r.FwdOnly {
		return nil
	}
	var m maebe
	cost := m.do(func() (*G.Node, error) { return G.Sum(r.energy) })
	if m.err != nil {
		return m.err
	}
	if _, err := G.Grad(cost, r.Model()...); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Backprop evaluates the energy graph on a (BatchSize, Visible) v and a (BatchSize, Hidden) h.
// Unless the model is FwdOnly, the gradients of the summed energy with respect to the
// learnables are left on the learnables, ready for a solver:
//
//	solver.Step(G.NodesToValueGrads(r.Model()))
//
// The returned per row energies are a copy.
func (r *RBM) Backprop(v, h *tensor.Dense) (*tensor.Dense, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if v == nil || !isMatrix(v, r.BatchSize, r.Visible) {
		return nil, errors.Errorf("shape mismatch: v must have shape %v", r.v.Shape())
	}
	if h == nil || !isMatrix(h, r.BatchSize, r.Hidden) {
		return nil, errors.Errorf("shape mismatch: h must have shape %v", r.h.Shape())
	}

	if r.m == nil {
		if r.FwdOnly {
			r.m = G.NewTapeMachine(r.g)
		} else {
			r.m = G.NewTapeMachine(r.g, G.BindDualValues(r.Model()...))
		}
	}
	r.m.Reset()
	if err := G.Let(r.v, v); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := G.Let(r.h, h); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := r.m.RunAll(); err != nil {
		return nil, errors.WithStack(err)
	}

	energies, ok := r.energyValue.(*tensor.Dense)
	if !ok {
		return nil, errors.Errorf("expected the energy to be a *tensor.Dense. Got %T instead", r.energyValue)
	}
	retVal := energies.Clone().(*tensor.Dense)
	if err := retVal.Reshape(r.BatchSize); err != nil {
		return nil, errors.WithStack(err)
	}
	return retVal, nil
}
