package boxstep

// Vec3 is a 3-vector over Fx. Grounded on the teacher's mgl32.Vec3
// usage in physics.go (the same Add/Sub/Cross/Dot/Normalize surface),
// reimplemented over the fixed-point kernel since simulation math may
// never touch a native float.
type Vec3 struct {
	X, Y, Z Fx
}

var Vec3Zero = Vec3{}

func NewVec3(x, y, z Fx) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

// Scale multiplies every component by a scalar.
func (v Vec3) Scale(s Fx) Vec3 {
	return Vec3{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

// Mul is componentwise multiplication (used for size scaling in
// transform propagation, §4.3).
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X.Mul(o.X), v.Y.Mul(o.Y), v.Z.Mul(o.Z)}
}

func (v Vec3) Div(s Fx) Vec3 {
	return Vec3{v.X.Div(s), v.Y.Div(s), v.Z.Div(s)}
}

func (v Vec3) Abs() Vec3 {
	return Vec3{v.X.Abs(), v.Y.Abs(), v.Z.Abs()}
}

func (v Vec3) Dot(o Vec3) Fx {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		Y: v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		Z: v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

func (v Vec3) LengthSquared() Fx {
	return v.Dot(v)
}

func (v Vec3) Length() Fx {
	return v.LengthSquared().Sqrt()
}

// Normalize divides by length; panics (via Fx.Div) if the vector is
// zero. Callers that cannot guarantee a non-zero input should use
// NormalizeOrZero.
func (v Vec3) Normalize() Vec3 {
	return v.Scale(v.Length().Recip())
}

// NormalizeOrZero returns the zero vector when length_squared == 0,
// otherwise scales by the reciprocal of the square root of
// length_squared (§4.2) — a single sqrt/reciprocal rather than a
// separate length() call.
func (v Vec3) NormalizeOrZero() Vec3 {
	lenSq := v.LengthSquared()
	if lenSq.IsZero() {
		return Vec3Zero
	}
	return v.Scale(lenSq.Sqrt().Recip())
}

// ClampLengthMax scales v down to at most maxLen, leaving it unchanged
// if already within bounds.
func (v Vec3) ClampLengthMax(maxLen Fx) Vec3 {
	lenSq := v.LengthSquared()
	maxSq := maxLen.Mul(maxLen)
	if lenSq <= maxSq {
		return v
	}
	length := lenSq.Sqrt()
	return v.Scale(maxLen.Div(length))
}

func (v Vec3) Equal(o Vec3) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}
