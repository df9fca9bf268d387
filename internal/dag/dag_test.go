package dag

import "testing"

func TestBuildDAG(t *testing.T) {
	d, err := Build([]string{"a", "b", "c"}, []Link{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	order := d.TopologicalOrder()
	if len(order) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(order))
	}
	idx := map[string]int{}
	for i, id := range order {
		idx[id] = i
	}
	if idx["a"] >= idx["b"] || idx["b"] >= idx["c"] {
		t.Fatalf("wrong order: %v", order)
	}
	if roots := d.Roots(); len(roots) != 1 || roots[0] != "a" {
		t.Errorf("roots: got %v, want [a]", roots)
	}
}

func TestBuildDAGCycleDetection(t *testing.T) {
	_, err := Build([]string{"a", "b"}, []Link{
		{From: "a", To: "b"},
		{From: "b", To: "a"},
	})
	if err == nil {
		t.Fatal("expected cycle error")
	}
}

func TestBuildDAGBackEdgeClosesLoop(t *testing.T) {
	d, err := Build([]string{"start", "work", "check", "done"}, []Link{
		{From: "start", To: "work"},
		{From: "work", To: "check"},
		{From: "check", To: "done"},
		{From: "check", To: "work", Back: true},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(d.BackEdges()) != 1 {
		t.Fatalf("back edges: got %d, want 1", len(d.BackEdges()))
	}
	if l := d.BackEdges()[0]; l.From != "check" || l.To != "work" {
		t.Errorf("back edge: got %+v", l)
	}
	if roots := d.Roots(); len(roots) != 1 || roots[0] != "start" {
		t.Errorf("roots: got %v, want [start]", roots)
	}
}

func TestBuildDAGErrors(t *testing.T) {
	if _, err := Build([]string{"a", "a"}, nil); err == nil {
		t.Error("expected duplicate node error")
	}
	if _, err := Build([]string{"a"}, []Link{{From: "a", To: "zz"}}); err == nil {
		t.Error("expected unknown node error")
	}
}

func TestTopologicalOrderIsDeclarationStable(t *testing.T) {
	d, err := Build([]string{"x", "b", "a"}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	order := d.TopologicalOrder()
	want := []string{"x", "b", "a"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order: got %v, want %v", order, want)
		}
	}
}
