package rbm

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

type maebe struct {
	err error
}

// generic monad... may be useful
func (m *maebe) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = f(); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}

// hamiltonian builds -(xWyᵀ + x·bxᵀ + y·byᵀ) as a (B, 1) column, one energy per row.
func (m *maebe) hamiltonian(x, y, bx, by, w *G.Node) *G.Node {
	coupling := m.bilinear(x, w, y)
	xTerm := m.linear(x, bx)
	yTerm := m.linear(y, by)
	sum := m.do(func() (*G.Node, error) { return G.Add(coupling, xTerm) })
	sum = m.do(func() (*G.Node, error) { return G.Add(sum, yTerm) })
	return m.do(func() (*G.Node, error) { return G.Neg(sum) })
}

// bilinear computes Σ_ij x_i W_ij y_j for every row, as a (B, 1) column. There is no mixing across rows.
func (m *maebe) bilinear(x, w, y *G.Node) *G.Node {
	if m.err != nil {
		return nil
	}
	ones := G.NewConstant(tensor.Ones(Float, y.Shape()[1], 1), G.WithName("ones"))
	xw := m.do(func() (*G.Node, error) { return G.Mul(x, w) })
	xwy := m.do(func() (*G.Node, error) { return G.HadamardProd(xw, y) })
	return m.do(func() (*G.Node, error) { return G.Mul(xwy, ones) })
}

// linear computes x·bᵀ for every row, as a (B, 1) column. b is a (1, n) row.
func (m *maebe) linear(x, b *G.Node) *G.Node {
	bT := m.do(func() (*G.Node, error) { return G.Transpose(b) })
	return m.do(func() (*G.Node, error) { return G.Mul(x, bT) })
}
