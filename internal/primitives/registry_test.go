package primitives

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestMatrixLayout(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.Scale3D(4, 5, 6))
	got := Matrix(m)

	assert.Equal(t, float32(4), got.M0)
	assert.Equal(t, float32(5), got.M5)
	assert.Equal(t, float32(6), got.M10)
	assert.Equal(t, float32(1), got.M12)
	assert.Equal(t, float32(2), got.M13)
	assert.Equal(t, float32(3), got.M14)
	assert.Equal(t, float32(1), got.M15)
	assert.Zero(t, got.M3)
}
