package diagram

import (
	"context"
	"testing"

	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/reveal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPNG(t *testing.T) {
	f := reveal.Project(chart.Ralph(), reveal.ViewState{Step: 6, Op: reveal.OpAdvance})

	png, err := Render(context.Background(), f, FormatPNG)
	require.NoError(t, err)
	require.True(t, len(png) > 8, "PNG should be larger than header")

	// PNG magic bytes: 0x89 P N G.
	assert.Equal(t, byte(0x89), png[0])
	assert.Equal(t, byte('P'), png[1])
	assert.Equal(t, byte('N'), png[2])
	assert.Equal(t, byte('G'), png[3])
}

func TestRenderSVG_ShowAll(t *testing.T) {
	f := reveal.Project(chart.Ralph(), reveal.ShowAll(17))

	svg, err := Render(context.Background(), f, FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "More Stories?")
}

func TestRenderEmptyFrame(t *testing.T) {
	svg, err := Render(context.Background(), reveal.Project(chart.Ralph(), reveal.ViewState{}), FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "Step 0 of 17")
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(context.Background(), reveal.Frame{}, ImageFormat("gif"))
	assert.Error(t, err)
}

func TestImageFormatContentType(t *testing.T) {
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())
}
