package rbm

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

const (
	visibleCluster = "cluster_visible"
	hiddenCluster  = "cluster_hidden"
)

// ToDot renders the bipartite structure of the machine as an undirected graphviz graph.
// Units are labelled with their biases and edges with their couplings.
func (r *RBM) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("RBM"); err != nil {
		panic(err)
	}
	g.SetDir(false)
	if r.ready() != nil {
		return g.String()
	}

	g.AddAttr("RBM", "rankdir", "LR")
	g.AddSubGraph("RBM", visibleCluster, map[string]string{"label": `"visible"`})
	g.AddSubGraph("RBM", hiddenCluster, map[string]string{"label": `"hidden"`})

	bv := r.VisibleBias().Data().([]float32)
	bh := r.HiddenBias().Data().([]float32)
	for i, b := range bv {
		g.AddNode(visibleCluster, visibleName(i), map[string]string{
			"shape": "circle",
			"label": fmt.Sprintf(`"v%d\nb=%.3f"`, i, b),
		})
	}
	for j, b := range bh {
		g.AddNode(hiddenCluster, hiddenName(j), map[string]string{
			"shape": "box",
			"label": fmt.Sprintf(`"h%d\nb=%.3f"`, j, b),
		})
	}

	ws, err := rows(r.Coupling())
	if err != nil {
		panic(err)
	}
	for i, row := range ws {
		for j, w := range row {
			g.AddEdge(visibleName(i), hiddenName(j), false, map[string]string{
				"label": fmt.Sprintf(`"%.3f"`, w),
			})
		}
	}
	return g.String()
}

func visibleName(i int) string { return fmt.Sprintf("v%d", i) }
func hiddenName(j int) string  { return fmt.Sprintf("h%d", j) }
