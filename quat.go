package boxstep

// Quat is a unit quaternion over Fx: {x,y,z,w}, identity {0,0,0,1}.
// Grounded on the teacher's mgl32.Quat usage (QuatToMat3, Quat.Rotate)
// in physics.go, reimplemented over Fx.
type Quat struct {
	X, Y, Z, W Fx
}

var QuatIdentity = Quat{X: 0, Y: 0, Z: 0, W: FxOne}

// Mul is Hamilton quaternion product. self.Mul(rhs) applies rhs first,
// then self (§4.2) — i.e. rotate_vec3 composes as self*(rhs*v*rhs')*self'.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W.Mul(r.X).Add(q.X.Mul(r.W)).Add(q.Y.Mul(r.Z)).Sub(q.Z.Mul(r.Y)),
		Y: q.W.Mul(r.Y).Sub(q.X.Mul(r.Z)).Add(q.Y.Mul(r.W)).Add(q.Z.Mul(r.X)),
		Z: q.W.Mul(r.Z).Add(q.X.Mul(r.Y)).Sub(q.Y.Mul(r.X)).Add(q.Z.Mul(r.W)),
		W: q.W.Mul(r.W).Sub(q.X.Mul(r.X)).Sub(q.Y.Mul(r.Y)).Sub(q.Z.Mul(r.Z)),
	}
}

func (q Quat) Conjugate() Quat {
	return Quat{X: q.X.Neg(), Y: q.Y.Neg(), Z: q.Z.Neg(), W: q.W}
}

func (q Quat) LengthSquared() Fx {
	return q.X.Mul(q.X).Add(q.Y.Mul(q.Y)).Add(q.Z.Mul(q.Z)).Add(q.W.Mul(q.W))
}

func (q Quat) Length() Fx {
	return q.LengthSquared().Sqrt()
}

// Normalize scales q to unit length; panics if q is the zero
// quaternion (never a legitimate rotation).
func (q Quat) Normalize() Quat {
	inv := q.Length().Recip()
	return Quat{X: q.X.Mul(inv), Y: q.Y.Mul(inv), Z: q.Z.Mul(inv), W: q.W.Mul(inv)}
}

// RotateVec3 computes self * Quat(v,0) * conjugate(self), returning the
// vector part (§4.2).
func (q Quat) RotateVec3(v Vec3) Vec3 {
	p := Quat{X: v.X, Y: v.Y, Z: v.Z, W: 0}
	r := q.Mul(p).Mul(q.Conjugate())
	return Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// QuatFromAxisAngleX/Y/Z build a rotation of angle radians about the
// named principal axis via sin_cos(θ/2); they do not renormalize —
// callers compose several and normalize explicitly (§4.2).
func QuatFromAxisAngleX(angle Fx) Quat {
	s, c := SinCos(angle.Div(fxTwo))
	return Quat{X: s, Y: 0, Z: 0, W: c}
}

func QuatFromAxisAngleY(angle Fx) Quat {
	s, c := SinCos(angle.Div(fxTwo))
	return Quat{X: 0, Y: s, Z: 0, W: c}
}

func QuatFromAxisAngleZ(angle Fx) Quat {
	s, c := SinCos(angle.Div(fxTwo))
	return Quat{X: 0, Y: 0, Z: s, W: c}
}

// ToMat3 expands q into its 3x3 rotation matrix. Entry i is the image
// of the i-th basis vector (X, Y, Z), i.e. one column of the matrix.
// OBB axis extraction (obb.go) does not use it; it rotates the basis
// vectors with RotateVec3.
func (q Quat) ToMat3() [3]Vec3 {
	x2 := q.X.Add(q.X)
	y2 := q.Y.Add(q.Y)
	z2 := q.Z.Add(q.Z)

	xx := q.X.Mul(x2)
	xy := q.X.Mul(y2)
	xz := q.X.Mul(z2)
	yy := q.Y.Mul(y2)
	yz := q.Y.Mul(z2)
	zz := q.Z.Mul(z2)
	wx := q.W.Mul(x2)
	wy := q.W.Mul(y2)
	wz := q.W.Mul(z2)

	return [3]Vec3{
		{X: FxOne.Sub(yy).Sub(zz), Y: xy.Add(wz), Z: xz.Sub(wy)},
		{X: xy.Sub(wz), Y: FxOne.Sub(xx).Sub(zz), Z: yz.Add(wx)},
		{X: xz.Add(wy), Y: yz.Sub(wx), Z: FxOne.Sub(xx).Sub(yy)},
	}
}
