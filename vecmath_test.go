package boxstep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func v(x, y, z float64) Vec3 {
	return NewVec3(FxFromFloat64(x), FxFromFloat64(y), FxFromFloat64(z))
}

func TestVec3_AddSubDotCross(t *testing.T) {
	a := v(1, 2, 3)
	b := v(4, 5, 6)

	assert.Equal(t, v(5, 7, 9), a.Add(b))
	assert.Equal(t, v(-3, -3, -3), a.Sub(b))
	assert.InDelta(t, 32.0, a.Dot(b).ToFloat64(), 1e-6)

	cross := a.Cross(b)
	assert.InDelta(t, -3.0, cross.X.ToFloat64(), 1e-6)
	assert.InDelta(t, 6.0, cross.Y.ToFloat64(), 1e-6)
	assert.InDelta(t, -3.0, cross.Z.ToFloat64(), 1e-6)
}

func TestVec3_NormalizeOrZero(t *testing.T) {
	assert.Equal(t, Vec3Zero, Vec3Zero.NormalizeOrZero())

	n := v(3, 4, 0).NormalizeOrZero()
	assert.InDelta(t, 1.0, n.Length().ToFloat64(), 1e-6)
	assert.InDelta(t, 0.6, n.X.ToFloat64(), 1e-3)
	assert.InDelta(t, 0.8, n.Y.ToFloat64(), 1e-3)
}

func TestVec3_ClampLengthMax(t *testing.T) {
	long := v(10, 0, 0)
	clamped := long.ClampLengthMax(FxFromInt(2))
	assert.InDelta(t, 2.0, clamped.Length().ToFloat64(), 1e-6)

	short := v(1, 0, 0)
	assert.Equal(t, short, short.ClampLengthMax(FxFromInt(2)))
}

func TestQuat_IdentityRotationIsNoop(t *testing.T) {
	vec := v(1, 2, 3)
	assert.Equal(t, vec, QuatIdentity.RotateVec3(vec))
}

func TestQuat_ComposeWithInverseIsIdentity(t *testing.T) {
	q := QuatFromAxisAngleY(FxFromFloat64(math.Pi / 3))
	result := q.Mul(q.Conjugate()).Normalize()

	assert.InDelta(t, 1.0, result.W.ToFloat64(), 3e-3)
	assert.InDelta(t, 0.0, result.X.ToFloat64(), 3e-3)
	assert.InDelta(t, 0.0, result.Y.ToFloat64(), 3e-3)
	assert.InDelta(t, 0.0, result.Z.ToFloat64(), 3e-3)
}

func TestQuat_RotateVec3AroundY(t *testing.T) {
	q := QuatFromAxisAngleY(FxFromFloat64(math.Pi / 2))
	rotated := q.RotateVec3(v(1, 0, 0))

	assert.InDelta(t, 0.0, rotated.X.ToFloat64(), 5e-3)
	assert.InDelta(t, 0.0, rotated.Y.ToFloat64(), 5e-3)
	assert.InDelta(t, -1.0, rotated.Z.ToFloat64(), 5e-3)
}

func TestQuat_ToMat3IdentityIsEye(t *testing.T) {
	mat := QuatIdentity.ToMat3()
	assert.Equal(t, FxOne, mat[0].X)
	assert.Equal(t, FxOne, mat[1].Y)
	assert.Equal(t, FxOne, mat[2].Z)
}
