// Package dag splits a chart's edges into forward edges and marked
// back-edges and orders the forward graph topologically.
package dag

import "fmt"

// Link is a directed connection between two node ids. Back links close a
// loop and are excluded from the forward ordering.
type Link struct {
	From string
	To   string
	Back bool
}

type DAG struct {
	ids       []string
	known     map[string]bool
	children  map[string][]string
	parents   map[string][]string
	backEdges []Link
	topoOrder []string
}

func Build(ids []string, links []Link) (*DAG, error) {
	d := &DAG{
		known:    make(map[string]bool, len(ids)),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
	}

	for _, id := range ids {
		if d.known[id] {
			return nil, fmt.Errorf("duplicate node ID: %s", id)
		}
		d.known[id] = true
		d.ids = append(d.ids, id)
	}

	for _, l := range links {
		if !d.known[l.From] {
			return nil, fmt.Errorf("edge references unknown node: %s", l.From)
		}
		if !d.known[l.To] {
			return nil, fmt.Errorf("edge references unknown node: %s", l.To)
		}
		if l.Back {
			d.backEdges = append(d.backEdges, l)
			continue
		}
		d.children[l.From] = append(d.children[l.From], l.To)
		d.parents[l.To] = append(d.parents[l.To], l.From)
	}

	order, err := d.topoSort()
	if err != nil {
		return nil, err
	}
	d.topoOrder = order
	return d, nil
}

// topoSort is Kahn's algorithm; ties resolve in declaration order so the
// result is stable for a given chart.
func (d *DAG) topoSort() ([]string, error) {
	inDegree := make(map[string]int, len(d.ids))
	for _, children := range d.children {
		for _, c := range children {
			inDegree[c]++
		}
	}
	var queue []string
	for _, id := range d.ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	order := make([]string, 0, len(d.ids))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)
		for _, c := range d.children[node] {
			inDegree[c]--
			if inDegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	if len(order) != len(d.ids) {
		return nil, fmt.Errorf("cycle detected in chart graph (excluding loop-back edges)")
	}
	return order, nil
}

func (d *DAG) TopologicalOrder() []string { return d.topoOrder }
func (d *DAG) BackEdges() []Link          { return d.backEdges }

func (d *DAG) Roots() []string {
	var roots []string
	for _, id := range d.ids {
		if len(d.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}
