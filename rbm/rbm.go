package rbm

import (
	rng "github.com/leesper/go_rng"
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

var Float = G.Float32

// RBM is a restricted Boltzmann machine over binary Ising spins, with one visible layer and one hidden layer.
//
// The three parameters live in a gorgonia graph as learnables, so that an external solver
// may update them from the gradients of the energy.
type RBM struct {
	Config

	g     *G.ExprGraph
	vBias *G.Node // (1, Visible)
	hBias *G.Node // (1, Hidden)
	w     *G.Node // (Visible, Hidden)

	// supplied initial values. nil means the default initialiser is used
	initV, initH, initW *tensor.Dense

	v, h   *G.Node // energy graph inputs
	energy *G.Node

	energyValue G.Value // per row energies of the last Backprop
	m           G.VM

	bern *rng.BernoulliGenerator
}

// ConsOpt is a construction option for an *RBM.
type ConsOpt func(r *RBM)

// WithVisibleBias uses the given (1, Visible) tensor as the visible bias instead of drawing it from N(0, 1).
func WithVisibleBias(t *tensor.Dense) ConsOpt { return func(r *RBM) { r.initV = t } }

// WithHiddenBias uses the given (1, Hidden) tensor as the hidden bias instead of filling it with -1.
func WithHiddenBias(t *tensor.Dense) ConsOpt { return func(r *RBM) { r.initH = t } }

// WithCoupling uses the given (Visible, Hidden) tensor as the coupling matrix instead of drawing it from N(0, 1).
func WithCoupling(t *tensor.Dense) ConsOpt { return func(r *RBM) { r.initW = t } }

// New returns a new, uninitialized *RBM.
func New(conf Config, opts ...ConsOpt) *RBM {
	retVal := &RBM{
		Config: conf,
	}
	for _, opt := range opts {
		opt(retVal)
	}
	return retVal
}

// Init resolves the layer sizes, creates the parameters and builds the energy graph.
//
// A zero Visible or Hidden in the config is inferred from the supplied tensors.
func (r *RBM) Init() error {
	r.reset()
	if err := r.resolve(); err != nil {
		return err
	}
	if !r.Config.IsValid() {
		return errors.Errorf("invalid config %+v", r.Config)
	}

	gauss := rng.NewGaussianGenerator(r.Seed)
	r.bern = rng.NewBernoulliGenerator(r.Seed + 1) // separate stream from initialisation

	vb := r.initV
	if vb == nil {
		vb = gaussian(gauss, 1, r.Visible)
	}
	hb := r.initH
	if hb == nil {
		hb = filled(-1, 1, r.Hidden)
	}
	w := r.initW
	if w == nil {
		w = gaussian(gauss, r.Visible, r.Hidden)
	}

	r.g = G.NewGraph()
	r.vBias = G.NewMatrix(r.g, Float, G.WithName("vBias"), G.WithValue(vb))
	r.hBias = G.NewMatrix(r.g, Float, G.WithName("hBias"), G.WithValue(hb))
	r.w = G.NewMatrix(r.g, Float, G.WithName("W"), G.WithValue(w))

	if err := r.fwd(); err != nil {
		return err
	}
	return r.bwd()
}

// resolve fills in missing sizes from the supplied tensors and checks that everything agrees.
func (r *RBM) resolve() (err error) {
	if r.Visible, err = resolveDim("visible", r.Visible, dimOf(r.initV, 1), dimOf(r.initW, 0)); err != nil {
		return err
	}
	if r.Hidden, err = resolveDim("hidden", r.Hidden, dimOf(r.initH, 1), dimOf(r.initW, 1)); err != nil {
		return err
	}
	if err = checkParam("visible bias", r.initV, 1, r.Visible); err != nil {
		return err
	}
	if err = checkParam("hidden bias", r.initH, 1, r.Hidden); err != nil {
		return err
	}
	return checkParam("coupling", r.initW, r.Visible, r.Hidden)
}

// Model returns the learnables: the visible bias, the hidden bias and the coupling matrix, in that order.
func (r *RBM) Model() G.Nodes { return G.Nodes{r.vBias, r.hBias, r.w} }

// VisibleBias returns the current value of the visible bias.
func (r *RBM) VisibleBias() *tensor.Dense { return r.vBias.Value().(*tensor.Dense) }

// HiddenBias returns the current value of the hidden bias.
func (r *RBM) HiddenBias() *tensor.Dense { return r.hBias.Value().(*tensor.Dense) }

// Coupling returns the current value of the coupling matrix W.
func (r *RBM) Coupling() *tensor.Dense { return r.w.Value().(*tensor.Dense) }

// Clone returns a new *RBM with copies of the current parameters.
func (r *RBM) Clone() (*RBM, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	r2 := New(r.Config,
		WithVisibleBias(r.VisibleBias().Clone().(*tensor.Dense)),
		WithHiddenBias(r.HiddenBias().Clone().(*tensor.Dense)),
		WithCoupling(r.Coupling().Clone().(*tensor.Dense)),
	)
	if err := r2.Init(); err != nil {
		return nil, err
	}
	return r2, nil
}

// Close implements a closer, because a gorgonia VM is a resource.
func (r *RBM) Close() error {
	if r.m == nil {
		return nil
	}
	err := r.m.Close()
	r.m = nil
	return err
}

func (r *RBM) ready() error {
	if r.g == nil {
		return errors.New("RBM is not initialized. Call Init first")
	}
	return nil
}

func (r *RBM) reset() {
	if r.m != nil {
		r.m.Close()
	}
	r.m = nil
	r.g = nil
	r.vBias = nil
	r.hBias = nil
	r.w = nil

	r.v = nil
	r.h = nil
	r.energy = nil
	r.energyValue = nil
}

func gaussian(gen *rng.GaussianGenerator, rows, cols int) *tensor.Dense {
	backing := make([]float32, rows*cols)
	for i := range backing {
		backing[i] = float32(gen.StdGaussian())
	}
	return tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
}

func filled(v float32, rows, cols int) *tensor.Dense {
	backing := make([]float32, rows*cols)
	for i := range backing {
		backing[i] = v
	}
	return tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
}
