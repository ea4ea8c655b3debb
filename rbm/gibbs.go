package rbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Sample draws an independent Bernoulli sample for every entry of p, using the entry as the
// probability of a 1. Every entry must lie in [0, 1].
func (r *RBM) Sample(p *tensor.Dense) (*tensor.Dense, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("cannot sample from a nil tensor")
	}
	probs, ok := p.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("cannot sample from %v. Expected a tensor of %v", p.Dtype(), Float)
	}

	retVal := tensor.New(tensor.WithShape(p.Shape().Clone()...), tensor.Of(Float))
	draws := retVal.Data().([]float32)
	for i, x := range probs {
		if !(x >= 0 && x <= 1) {
			return nil, errors.Errorf("entry %d is %v, which is not a probability", i, x)
		}
		if r.bern.Bernoulli_P(float64(x)) {
			draws[i] = 1
		}
	}
	return retVal, nil
}

// GibbsStep performs one block Gibbs sweep from the visible probabilities v. It returns the
// binary visible sample, the binary hidden sample and the visible probabilities P(v | h).
func (r *RBM) GibbsStep(v *tensor.Dense) (vSample, hSample, vNext *tensor.Dense, err error) {
	if vSample, err = r.Sample(v); err != nil {
		return nil, nil, nil, errors.Wrapf(err, "gibbs step failed - sampling v")
	}
	var h *tensor.Dense
	if h, err = r.HGivenV(vSample); err != nil {
		return nil, nil, nil, err
	}
	if hSample, err = r.Sample(h); err != nil {
		return nil, nil, nil, errors.Wrapf(err, "gibbs step failed - sampling h")
	}
	if vNext, err = r.VGivenH(hSample); err != nil {
		return nil, nil, nil, err
	}
	return vSample, hSample, vNext, nil
}

// Forward returns the distribution over the visible spins after k block Gibbs steps from v.
//
// The samples drawn along the way are discarded; the result is a probability, not a sample.
// When k is 0, v itself is returned.
func (r *RBM) Forward(v *tensor.Dense, k int) (*tensor.Dense, error) {
	if k < 0 {
		return nil, errors.Errorf("cannot take %d Gibbs steps", k)
	}
	var err error
	for i := 0; i < k; i++ {
		if _, _, v, err = r.GibbsStep(v); err != nil {
			return nil, errors.WithMessagef(err, "step %d of %d", i, k)
		}
	}
	return v, nil
}
