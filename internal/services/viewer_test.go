package services

import (
	"context"
	"testing"
	"time"

	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/events"
	"github.com/soochol/ralphflow/internal/repository"
	"github.com/soochol/ralphflow/internal/reveal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer() (*ViewerService, *events.Bus) {
	bus := events.NewBus()
	svc := NewViewerService(
		repository.NewMemoryChartRepository(chart.Ralph()),
		repository.NewMemorySessionRepository(),
		bus,
	)
	return svc, bus
}

func TestParseOp(t *testing.T) {
	cases := map[string]reveal.Op{
		"next":     reveal.OpAdvance,
		"previous": reveal.OpRetreat,
		"reset":    reveal.OpReset,
		"show-all": reveal.OpShowAll,
	}
	for name, want := range cases {
		got, err := ParseOp(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}
	_, err := ParseOp("jump")
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestViewer_OpenStartsAtZero(t *testing.T) {
	svc, _ := newTestViewer()
	v, err := svc.Open(context.Background(), chart.RalphName)
	require.NoError(t, err)

	assert.NotEmpty(t, v.Session.ID)
	assert.Equal(t, 0, v.Frame.Step)
	assert.Equal(t, 17, v.Frame.Total)
	assert.Empty(t, v.Frame.Nodes)
	assert.False(t, v.Frame.CanRetreat)
	assert.True(t, v.Frame.CanAdvance)
}

func TestViewer_OpenUnknownChart(t *testing.T) {
	svc, _ := newTestViewer()
	_, err := svc.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestViewer_ApplyAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestViewer()
	v, err := svc.Open(ctx, chart.RalphName)
	require.NoError(t, err)
	id := v.Session.ID

	for i := 0; i < 4; i++ {
		v, err = svc.Apply(ctx, id, reveal.OpAdvance)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, v.Frame.Step)
	assert.Equal(t, int64(4), v.Session.Seq)
	edge, ok := v.Frame.AnimatedEdge()
	require.True(t, ok)
	assert.Equal(t, "e3-4", edge)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, v.Frame, got.Frame, "Get re-projects the stored state to the same frame")

	v, err = svc.Apply(ctx, id, reveal.OpShowAll)
	require.NoError(t, err)
	assert.Equal(t, 17, v.Frame.Step)

	v, err = svc.Apply(ctx, id, reveal.OpAdvance)
	require.NoError(t, err)
	assert.Equal(t, 17, v.Frame.Step, "advance at N is a no-op")

	v, err = svc.Apply(ctx, id, reveal.OpReset)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Frame.Step)

	_, err = svc.Apply(ctx, id, reveal.Op("jump"))
	assert.ErrorIs(t, err, ErrUnknownOp)

	_, err = svc.Apply(ctx, "missing", reveal.OpAdvance)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestViewer_ApplyPublishesFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc, _ := newTestViewer()
	v, err := svc.Open(ctx, chart.RalphName)
	require.NoError(t, err)

	ch := svc.Watch(ctx, v.Session.ID)
	_, err = svc.Apply(ctx, v.Session.ID, reveal.OpAdvance)
	require.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, v.Session.ID, ev.SessionID)
		assert.Equal(t, int64(1), ev.Seq)
		assert.Equal(t, reveal.OpAdvance, ev.Op)
		assert.Equal(t, 1, ev.Frame.Step)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for frame event")
	}
}

func TestViewer_Close(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestViewer()
	v, err := svc.Open(ctx, chart.RalphName)
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, v.Session.ID))
	_, err = svc.Get(ctx, v.Session.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestViewer_AddChartValidates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestViewer()

	err := svc.AddChart(ctx, &chart.Chart{Name: "empty"})
	assert.ErrorIs(t, err, chart.ErrInvalid)

	tiny := &chart.Chart{Name: "tiny", Nodes: []chart.Node{{ID: "a", Category: chart.CategoryDone}}}
	require.NoError(t, svc.AddChart(ctx, tiny))

	list, err := svc.Charts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func threeNodeRalph() *chart.Chart {
	c := chart.Ralph()
	c.Nodes = c.Nodes[:3]
	c.Edges = c.Edges[:2]
	c.Annotations = map[int]chart.Annotation{1: c.Annotations[1]}
	return c
}

func TestViewer_ApplyAfterChartShrinks(t *testing.T) {
	svc, _ := newTestViewer()
	ctx := context.Background()
	v, err := svc.Open(ctx, chart.RalphName)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, v.Session.ID, reveal.OpShowAll)
	require.NoError(t, err)
	require.NoError(t, svc.AddChart(ctx, threeNodeRalph()))

	got, err := svc.Apply(ctx, v.Session.ID, reveal.OpRetreat)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Session.State.Step)
	assert.Equal(t, 2, got.Frame.Step)

	got, err = svc.Apply(ctx, v.Session.ID, reveal.OpAdvance)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Session.State.Step)

	got, err = svc.Apply(ctx, v.Session.ID, reveal.OpAdvance)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Session.State.Step, "next at N stays at N")
	assert.False(t, got.Frame.CanAdvance)
}

func TestViewer_RemoveChart(t *testing.T) {
	svc, _ := newTestViewer()
	ctx := context.Background()
	v, err := svc.Open(ctx, chart.RalphName)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveChart(ctx, chart.RalphName))
	_, err = svc.Get(ctx, v.Session.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.RemoveChart(ctx, chart.RalphName), repository.ErrNotFound)
}
