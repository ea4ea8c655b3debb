package ising

import "github.com/gorgonia/ising/rbm"

type Config struct {
	Name  string
	RBM   rbm.Config
	Steps int // Gibbs sweeps per Run
	Width int // spins per lattice row when laying out the visible layer

	// extensions
	OutputEncoder OutputEncoder
}

func (conf Config) IsValid() bool {
	return conf.RBM.IsValid() &&
		conf.Steps >= 0 &&
		conf.Width >= 1
}

// OutputEncoder encodes the frames of a chain as whatever.
//
// An example OutputEncoder is the GifEncoder.
type OutputEncoder interface {
	Encode(f Frame) error
	Flush() error
}

// Frame is what a chain looks like after one sweep. Only the first row of the batch is kept.
type Frame struct {
	Name  string
	Step  int
	Width int

	Visible       []float32 // P(v | h) after the sweep
	Spins         []float32 // sampled visible spins, as ±1
	Magnetization float32   // over the whole batch
	Energy        float32   // mean over the whole batch
}

// Height is the number of lattice rows needed to lay out the visible layer.
func (f Frame) Height() int {
	if f.Width <= 0 {
		return 0
	}
	return (len(f.Visible) + f.Width - 1) / f.Width
}
