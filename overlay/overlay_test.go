package overlay

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/hermite"
	"github.com/npillmayer/streetplan/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegenerateMask(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, err := tensor.NewField(64, 0, tensor.Grid{Center: streetplan.P(16, 16), Length: 10})
	require.NoError(t, err)
	mask := DegenerateMask(f, MaskThreshold)
	require.Equal(t, 64, mask.Bounds().Dx())
	require.Equal(t, 64, mask.Bounds().Dy())
	assert.Equal(t, uint8(255), mask.GrayAt(16, 16).Y)
	assert.Equal(t, uint8(255), mask.GrayAt(20, 10).Y)
	assert.Equal(t, uint8(0), mask.GrayAt(40, 40).Y)
	assert.Equal(t, uint8(0), mask.GrayAt(16, 30).Y)
}

func TestNetwork(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	road := hermite.Curve{
		{Position: streetplan.P(10, 32), Velocity: streetplan.P(20, 0)},
		{Position: streetplan.P(30, 32), Velocity: streetplan.P(20, 0)},
		{Position: streetplan.P(50, 32), Velocity: streetplan.P(20, 0)},
	}
	crossing := hermite.Curve{
		{Position: streetplan.P(30, 10), Velocity: streetplan.P(0, 40)},
		{Position: streetplan.P(30, 50), Velocity: streetplan.P(0, 40)},
	}
	img := Network([]hermite.Curve{road, crossing}, 64, 8, 2)
	require.Equal(t, 64, img.Bounds().Dx())
	assert.Greater(t, img.AlphaAt(20, 32).A, uint8(200))
	assert.Greater(t, img.AlphaAt(30, 32).A, uint8(200), "overlapping strokes must not cancel")
	assert.Greater(t, img.AlphaAt(30, 20).A, uint8(200))
	assert.Equal(t, uint8(0), img.AlphaAt(20, 10).A)
	assert.Equal(t, uint8(0), img.AlphaAt(60, 60).A)
	empty := Network(nil, 16, 8, 2)
	assert.Equal(t, uint8(0), empty.AlphaAt(8, 8).A)
}
