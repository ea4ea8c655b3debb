package rbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func matrix(r, c int, data ...float32) *tensor.Dense {
	return tensor.New(tensor.WithShape(r, c), tensor.WithBacking(data))
}

func newModel(t *testing.T, conf Config, opts ...ConsOpt) *RBM {
	r := New(conf, opts...)
	if err := r.Init(); err != nil {
		t.Fatalf("%+v", err)
	}
	return r
}

func TestInitDefaults(t *testing.T) {
	assert := assert.New(t)
	conf := DefaultConf(4, 3)
	conf.Seed = 1337
	r := newModel(t, conf)
	defer r.Close()

	assert.Equal(tensor.Shape{1, 4}, r.VisibleBias().Shape())
	assert.Equal(tensor.Shape{1, 3}, r.HiddenBias().Shape())
	assert.Equal(tensor.Shape{4, 3}, r.Coupling().Shape())
	assert.Equal([]float32{-1, -1, -1}, r.HiddenBias().Data())
	assert.Len(r.Model(), 3)
	for _, n := range r.Model() {
		assert.True(n.IsVar(), "%v should be a learnable", n)
	}

	var nonZero int
	for _, w := range r.Coupling().Data().([]float32) {
		if w != 0 {
			nonZero++
		}
	}
	assert.Equal(12, nonZero, "W should be drawn from a normal distribution")
}

func TestInitSeed(t *testing.T) {
	conf := DefaultConf(5, 4)
	conf.Seed = 42
	a := newModel(t, conf)
	b := newModel(t, conf)
	assert.Equal(t, a.Coupling().Data(), b.Coupling().Data())
	assert.Equal(t, a.VisibleBias().Data(), b.VisibleBias().Data())

	conf.Seed = 43
	c := newModel(t, conf)
	assert.NotEqual(t, a.Coupling().Data(), c.Coupling().Data())
}

func TestInitSupplied(t *testing.T) {
	assert := assert.New(t)
	vb := matrix(1, 3, 0.1, 0.2, 0.3)
	hb := matrix(1, 2, 0.5, -0.5)
	w := matrix(3, 2, 1, 2, 3, 4, 5, 6)

	r := newModel(t, Config{BatchSize: 1}, WithVisibleBias(vb), WithHiddenBias(hb), WithCoupling(w))
	assert.Equal(3, r.Visible)
	assert.Equal(2, r.Hidden)
	assert.Equal([]float32{0.1, 0.2, 0.3}, r.VisibleBias().Data())
	assert.Equal([]float32{0.5, -0.5}, r.HiddenBias().Data())
	assert.Equal([]float32{1, 2, 3, 4, 5, 6}, r.Coupling().Data())

	// only W supplied: both sizes come from it, biases use the defaults
	r2 := newModel(t, Config{BatchSize: 1}, WithCoupling(matrix(3, 2, 1, 2, 3, 4, 5, 6)))
	assert.Equal(3, r2.Visible)
	assert.Equal(2, r2.Hidden)
	assert.Equal([]float32{-1, -1}, r2.HiddenBias().Data())
}

func TestInitErrors(t *testing.T) {
	tests := []struct {
		name string
		conf Config
		opts []ConsOpt
	}{
		{"no sizes, no tensors", Config{BatchSize: 1}, nil},
		{"missing visible size", Config{Hidden: 2, BatchSize: 1}, []ConsOpt{WithHiddenBias(matrix(1, 2, 0, 0))}},
		{"W disagrees with sizes", Config{Visible: 3, Hidden: 2, BatchSize: 1}, []ConsOpt{WithCoupling(matrix(2, 3, 0, 0, 0, 0, 0, 0))}},
		{"W disagrees with visible bias", Config{BatchSize: 1}, []ConsOpt{WithVisibleBias(matrix(1, 4, 0, 0, 0, 0)), WithCoupling(matrix(3, 2, 0, 0, 0, 0, 0, 0))}},
		{"bias is a vector", Config{Visible: 2, Hidden: 2, BatchSize: 1}, []ConsOpt{WithHiddenBias(tensor.New(tensor.WithShape(2), tensor.WithBacking([]float32{0, 0})))}},
		{"inferred size from a vector bias", Config{Hidden: 2, BatchSize: 1}, []ConsOpt{WithVisibleBias(tensor.New(tensor.WithShape(3), tensor.WithBacking([]float32{0, 0, 0})))}},
		{"coupling is a vector", Config{Visible: 1, Hidden: 2, BatchSize: 1}, []ConsOpt{WithCoupling(tensor.New(tensor.WithShape(2), tensor.WithBacking([]float32{0, 0})))}},
		{"bias has two rows", Config{Visible: 2, Hidden: 2, BatchSize: 1}, []ConsOpt{WithVisibleBias(matrix(2, 2, 0, 0, 0, 0))}},
		{"wrong dtype", Config{Visible: 2, Hidden: 1, BatchSize: 1}, []ConsOpt{WithCoupling(tensor.New(tensor.WithShape(2, 1), tensor.WithBacking([]float64{0, 0})))}},
		{"zero batch size", Config{Visible: 2, Hidden: 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.conf, tt.opts...)
			var err error
			assert.NotPanics(t, func() { err = r.Init() })
			if err == nil {
				t.Errorf("Expected Init() to fail")
			}
		})
	}
}

func TestUninitialized(t *testing.T) {
	r := New(DefaultConf(3, 2))
	_, err := r.HGivenV(matrix(1, 3, 0, 1, 0))
	assert.Error(t, err)
	_, err = r.Hamiltonian(matrix(1, 3, 0, 1, 0), matrix(1, 2, 1, 1))
	assert.Error(t, err)
	_, err = r.Clone()
	assert.Error(t, err)
	assert.NoError(t, r.Close())
}

func TestClone(t *testing.T) {
	assert := assert.New(t)
	conf := DefaultConf(4, 3)
	r := newModel(t, conf)
	r2, err := r.Clone()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	require.Len(t, r2.Model(), len(r.Model()))
	for i, n := range r.Model() {
		assert.Equal(n.Value().Data(), r2.Model()[i].Value().Data(), "%v and %v should have the same data", n, r2.Model()[i])
	}

	r2.Coupling().Data().([]float32)[0] += 1
	assert.NotEqual(r.Coupling().Data(), r2.Coupling().Data(), "clones should not share their backing")
}
