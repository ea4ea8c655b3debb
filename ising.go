package ising

import (
	"bytes"
	"fmt"
	"log"

	"github.com/gorgonia/ising/rbm"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
	"gorgonia.org/vecf32"
)

// Chain is the top level structure and the entry point of the API.
// It wraps an RBM and runs block Gibbs chains on it, recording what each sweep looks like.
type Chain struct {
	Statistics

	model *rbm.RBM

	// config
	name  string
	steps int
	width int

	// io
	outEnc OutputEncoder
	buf    bytes.Buffer
	logger *log.Logger
}

// New creates a Chain over a freshly initialized RBM. The options are passed on to the RBM.
func New(conf Config, opts ...rbm.ConsOpt) *Chain {
	if !conf.IsValid() {
		panic("Config is not valid. Unable to proceed")
	}
	model := rbm.New(conf.RBM, opts...)
	if err := model.Init(); err != nil {
		panic(fmt.Sprintf("%+v", err))
	}

	retVal := &Chain{
		Statistics: makeStatistics(),
		model:      model,
		name:       conf.Name,
		steps:      conf.Steps,
		width:      conf.Width,
		outEnc:     conf.OutputEncoder,
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	return retVal
}

// Model returns the underlying machine.
func (c *Chain) Model() *rbm.RBM { return c.model }

// Run runs the configured number of Gibbs sweeps from the visible probabilities v, and returns
// the final visible probabilities. With the same seed this is what Forward(v, steps) returns.
//
// Statistics are reset at the start of every Run.
func (c *Chain) Run(v *tensor.Dense) (*tensor.Dense, error) {
	c.Statistics.reset()
	c.buf.Reset()
	log.Printf("Running %q for %d steps", c.name, c.steps)
	c.logger.Printf("Running %q for %d steps", c.name, c.steps)
	c.logger.SetPrefix("\t")
	defer c.logger.SetPrefix("")

	for step := 1; step <= c.steps; step++ {
		vs, hs, next, err := c.model.GibbsStep(v)
		if err != nil {
			return nil, errors.WithMessage(err, fmt.Sprintf("Gibbs sweep %d failed", step))
		}
		energies, err := c.model.Hamiltonian(vs, hs)
		if err != nil {
			return nil, errors.WithMessage(err, fmt.Sprintf("energy of sweep %d failed", step))
		}

		samples := vs.Data().([]float32)
		es := energies.Data().([]float32)
		m := Magnetization(samples)
		e := vecf32.Sum(es) / float32(len(es))
		c.update(step, m, e)
		c.logger.Printf("Step %d: magnetization %.4f, energy %.4f", step, m, e)

		if c.outEnc != nil {
			if err := c.encode(step, vs, next, m, e); err != nil {
				return nil, err
			}
		}
		v = next
	}

	if c.outEnc != nil {
		if err := c.outEnc.Flush(); err != nil {
			return nil, errors.WithMessage(err, "flushing output")
		}
	}
	return v, nil
}

func (c *Chain) encode(step int, vs, next *tensor.Dense, m, e float32) error {
	samples, err := native.MatrixF32(vs)
	if err != nil {
		return errors.WithStack(err)
	}
	probs, err := native.MatrixF32(next)
	if err != nil {
		return errors.WithStack(err)
	}
	f := Frame{
		Name:          c.name,
		Step:          step,
		Width:         c.width,
		Visible:       append([]float32(nil), probs[0]...),
		Spins:         EncodeSpins(samples[0], nil),
		Magnetization: m,
		Energy:        e,
	}
	if err := c.outEnc.Encode(f); err != nil {
		return errors.WithMessage(err, fmt.Sprintf("encoding step %d", step))
	}
	return nil
}

// ExecLog returns the log of the last Run.
func (c *Chain) ExecLog() string { return c.buf.String() }

// Close implements a closer. It closes the underlying machine.
func (c *Chain) Close() error { return c.model.Close() }
