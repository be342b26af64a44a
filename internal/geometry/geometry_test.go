package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howardginsburg/ImageAIProcessor/internal/faults"
	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    geometry.Rect
		b    geometry.Rect
		want bool
	}{
		{
			name: "partial overlap",
			a:    geometry.Rect{Left: 0, Top: 0, Width: 100, Height: 100},
			b:    geometry.Rect{Left: 50, Top: 50, Width: 100, Height: 100},
			want: true,
		},
		{
			name: "disjoint",
			a:    geometry.Rect{Left: 0, Top: 0, Width: 100, Height: 100},
			b:    geometry.Rect{Left: 200, Top: 200, Width: 10, Height: 10},
			want: false,
		},
		{
			name: "containment",
			a:    geometry.Rect{Left: 0, Top: 0, Width: 100, Height: 100},
			b:    geometry.Rect{Left: 25, Top: 25, Width: 10, Height: 10},
			want: true,
		},
		{
			name: "edge touch counts as overlap",
			a:    geometry.Rect{Left: 0, Top: 0, Width: 100, Height: 100},
			b:    geometry.Rect{Left: 100, Top: 0, Width: 50, Height: 100},
			want: true,
		},
		{
			name: "corner touch counts as overlap",
			a:    geometry.Rect{Left: 0, Top: 0, Width: 10, Height: 10},
			b:    geometry.Rect{Left: 10, Top: 10, Width: 10, Height: 10},
			want: true,
		},
		{
			name: "disjoint in x only",
			a:    geometry.Rect{Left: 0, Top: 0, Width: 40, Height: 1000},
			b:    geometry.Rect{Left: 41, Top: 0, Width: 40, Height: 1000},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := geometry.Overlaps(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Overlap is symmetric.
			rev, err := geometry.Overlaps(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rev, "overlap should be symmetric")
		})
	}
}

func TestOverlaps_SelfOverlap(t *testing.T) {
	r := geometry.Rect{Left: 10, Top: 20, Width: 30, Height: 40}
	got, err := geometry.Overlaps(r, r)
	require.NoError(t, err)
	assert.True(t, got, "a box with positive area overlaps itself")
}

func TestOverlaps_InvalidGeometry(t *testing.T) {
	valid := geometry.Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	bad := geometry.Rect{Left: 0, Top: 0, Width: -5, Height: 10}

	_, err := geometry.Overlaps(bad, valid)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrInvalidGeometry)

	_, err = geometry.Overlaps(valid, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrInvalidGeometry)
}
