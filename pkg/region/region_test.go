package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		y0, y1, x0, x1 int
		wantErr        bool
	}{
		{name: "unit region", y0: 0, y1: 1, x0: 0, x1: 1, wantErr: false},
		{name: "interior window", y0: 1, y1: 3, x0: 1, x1: 3, wantErr: false},
		{name: "negative row", y0: -1, y1: 1, x0: 0, x1: 1, wantErr: true},
		{name: "negative column", y0: 0, y1: 1, x0: -1, x1: 1, wantErr: true},
		{name: "rows inverted", y0: 3, y1: 1, x0: 0, x1: 1, wantErr: true},
		{name: "rows equal", y0: 2, y1: 2, x0: 0, x1: 1, wantErr: true},
		{name: "columns inverted", y0: 0, y1: 1, x0: 3, x1: 1, wantErr: true},
		{name: "columns equal", y0: 0, y1: 1, x0: 2, x1: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.y0, tt.y1, tt.x0, tt.x1)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrInvalidBounds)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.y0, r.Y0())
			require.Equal(t, tt.y1, r.Y1())
			require.Equal(t, tt.x0, r.X0())
			require.Equal(t, tt.x1, r.X1())
		})
	}
}

func TestTotals(t *testing.T) {
	r, err := New(1, 4, 2, 8)
	require.NoError(t, err)
	require.Equal(t, 3, r.TotalRows())
	require.Equal(t, 6, r.TotalColumns())
}

func TestContains(t *testing.T) {
	r, err := New(1, 3, 1, 3)
	require.NoError(t, err)

	require.True(t, r.Contains(1, 1))
	require.True(t, r.Contains(2, 2))
	require.False(t, r.Contains(0, 1), "row above the window")
	require.False(t, r.Contains(3, 1), "end row is exclusive")
	require.False(t, r.Contains(1, 3), "end column is exclusive")
}

func TestFitsWithin(t *testing.T) {
	r, err := New(1, 3, 1, 3)
	require.NoError(t, err)

	require.True(t, r.FitsWithin(3, 3))
	require.True(t, r.FitsWithin(4, 4))
	require.False(t, r.FitsWithin(2, 3))
	require.False(t, r.FitsWithin(3, 2))
}

func TestString(t *testing.T) {
	r, err := New(0, 2, 1, 5)
	require.NoError(t, err)
	require.Equal(t, "(0, 2, 1, 5)", r.String())
}
