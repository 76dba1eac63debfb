package board_test

import (
	"testing"

	"github.com/arkwright/corvid/pkg/board"
	"github.com/arkwright/corvid/pkg/corerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	t.Run("valid, case-insensitive", func(t *testing.T) {
		tests := []struct {
			notation string
			want     board.Position
		}{
			{"a1", board.NewPosition(1, 1)},
			{"A1", board.NewPosition(1, 1)},
			{"h8", board.NewPosition(8, 8)},
			{"e4", board.NewPosition(5, 4)},
		}
		for _, tt := range tests {
			got, err := board.ParsePosition(tt.notation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		}
	})

	t.Run("invalid notation fails with Format", func(t *testing.T) {
		for _, notation := range []string{"", "a", "i1", "a9", "a1a", "11"} {
			_, err := board.ParsePosition(notation)
			require.Error(t, err)
			assert.True(t, corerr.Is(err, corerr.Format), "notation %q", notation)
		}
	})
}

func TestColorSymmetricGeometry(t *testing.T) {
	// spec §8.8: position.forward(n, White).rank == rank+n iff in range;
	// position.forward(n, Black).rank == rank-n iff in range.
	p := board.NewPosition(5, 4)

	white, ok := p.Forward(2, board.White)
	require.True(t, ok)
	assert.Equal(t, p.Rank+2, white.Rank)

	black, ok := p.Forward(2, board.Black)
	require.True(t, ok)
	assert.Equal(t, p.Rank-2, black.Rank)

	edge := board.NewPosition(5, 8)
	_, ok = edge.Forward(1, board.White)
	assert.False(t, ok)
}

func TestQuadrantInvalidArgument(t *testing.T) {
	p := board.NewPosition(4, 4)

	_, _, err := p.AxialStep(1, board.Quadrant(0), board.White)
	require.Error(t, err)
	assert.True(t, corerr.Is(err, corerr.InvalidArgument))

	_, _, err = p.RadialStep(1, 1, board.Quadrant(5), board.White)
	require.Error(t, err)
	assert.True(t, corerr.Is(err, corerr.InvalidArgument))
}

func TestAxialStepZeroDelta(t *testing.T) {
	p := board.NewPosition(4, 4)
	got, ok, err := p.AxialStep(0, board.Q1, board.White)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, got)
}
