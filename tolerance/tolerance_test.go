package tolerance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvlp/tolerance"
)

func TestFrac(t *testing.T) {
	for _, tc := range []struct {
		in, want float64
	}{
		{1.5, 0.5},
		{-0.25, 0.75},
		{3, 0},
		{2.9999999999, 0},
		{-1.00000000001, 0},
	} {
		assert.InDelta(t, tc.want, tolerance.Frac(tc.in), 1e-12, "Frac(%v)", tc.in)
	}
}

func TestIsIntegral(t *testing.T) {
	assert.True(t, tolerance.IsIntegral(2.0000005))
	assert.True(t, tolerance.IsIntegral(-3))
	assert.False(t, tolerance.IsIntegral(2.00001))
	assert.False(t, tolerance.IsIntegral(0.5))
}

func TestSnapAndIsZero(t *testing.T) {
	assert.Equal(t, 4.0, tolerance.Snap(3.9999999999))
	assert.Equal(t, 3.5, tolerance.Snap(3.5))
	assert.True(t, tolerance.IsZero(-1e-10))
	assert.False(t, tolerance.IsZero(1e-6))
}
