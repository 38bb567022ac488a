package boxstep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOBBFromTransform_CornerAnchored(t *testing.T) {
	o := OBBFromTransform(v(0, 0, 0), v(2, 2, 2), QuatIdentity)
	assert.Equal(t, v(1, 1, 1), o.Center)
	assert.Equal(t, v(1, 1, 1), o.HalfExtents)
}

func TestOBB_Intersects_Overlapping(t *testing.T) {
	a := OBBFromTransform(v(0, 0, 0), v(2, 2, 2), QuatIdentity)
	b := OBBFromTransform(v(1, 0, 0), v(2, 2, 2), QuatIdentity)

	info, hit := a.Intersects(b)
	require.True(t, hit)
	assert.InDelta(t, 1.0, info.Depth.ToFloat64(), 1e-6)
	assert.InDelta(t, 1.0, info.Normal.X.ToFloat64(), 1e-6)
	assert.InDelta(t, 1.0, info.Normal.Length().ToFloat64(), 1e-6)
}

func TestOBB_Intersects_Separated(t *testing.T) {
	a := OBBFromTransform(v(0, 0, 0), v(1, 1, 1), QuatIdentity)
	b := OBBFromTransform(v(5, 0, 0), v(1, 1, 1), QuatIdentity)

	_, hit := a.Intersects(b)
	assert.False(t, hit)
}

func TestOBB_Intersects_FallingCubeOnFloor(t *testing.T) {
	floor := OBBFromTransform(v(-50, 0, -50), v(100, 1, 100), QuatIdentity)
	cube := OBBFromTransform(v(-0.5, 0.6, -0.5), v(1, 1, 1), QuatIdentity)

	info, hit := cube.Intersects(floor)
	require.True(t, hit)
	assert.InDelta(t, 0.4, info.Depth.ToFloat64(), 1e-3)
	assert.InDelta(t, -1.0, info.Normal.Y.ToFloat64(), 1e-6) // points from the cube (A) down toward the floor (B)
}

// S3 geometry — a bullet beside a 45°-rotated wall. At these positions
// the bullet lies outside the wall's rotated X extent (about ±2.12), so
// no hit is expected; the assertion only checks that any reported
// overlap has a positive depth. The normal is not checked here.
func TestOBB_Intersects_OrientedWall(t *testing.T) {
	wall := OBBFromTransform(v(-0.5, 0, -2.5), v(1, 5, 5), QuatFromAxisAngleY(FxFromFloat64(math.Pi/4)))
	bullet := OBBFromTransform(v(-3.1, 2.4, -0.1), v(0.2, 0.2, 0.2), QuatIdentity)

	info, hit := bullet.Intersects(wall)
	if hit {
		assert.Greater(t, info.Depth, Fx(0))
	}
}
