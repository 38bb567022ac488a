package boxstep

// OBB is an oriented bounding box: `from_transform` is corner-anchored
// (§4.4) — half_extents = size/2, center = position + half_extents —
// so a LocalTransform/GlobalTransform's Position is always a box
// corner, not its center.
type OBB struct {
	Center      Vec3
	HalfExtents Vec3
	Rotation    Quat
}

func OBBFromTransform(position, size Vec3, rotation Quat) OBB {
	half := size.Scale(FxOne.Div(fxTwo))
	return OBB{
		Center:      position.Add(half),
		HalfExtents: half,
		Rotation:    rotation,
	}
}

// CollisionInfo is the result of a positive SAT test: depth is
// non-negative (zero when the boxes only touch, since the separation
// test is strict) and normal has unit length within one sqrt ULP.
type CollisionInfo struct {
	Point  Vec3
	Normal Vec3
	Depth  Fx
}

// axes returns the box's three face-normal directions in world space,
// in X, Y, Z order.
func (o OBB) axes() [3]Vec3 {
	return [3]Vec3{
		o.Rotation.RotateVec3(Vec3{X: FxOne}),
		o.Rotation.RotateVec3(Vec3{Y: FxOne}),
		o.Rotation.RotateVec3(Vec3{Z: FxOne}),
	}
}

// cornerSigns is the ordered 8-tuple of the SAT vertex generation
// (§4.4 step 4): center ± dx ± dy ± dz, sign pattern
// (−,−,−),(+,−,−),(−,+,−),(+,+,−),(−,−,+),(+,−,+),(−,+,+),(+,+,+).
var cornerSigns = [8][3]int{
	{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
}

func (o OBB) vertices() [8]Vec3 {
	ax := o.axes()
	dx := ax[0].Scale(o.HalfExtents.X)
	dy := ax[1].Scale(o.HalfExtents.Y)
	dz := ax[2].Scale(o.HalfExtents.Z)

	var verts [8]Vec3
	for i, s := range cornerSigns {
		p := o.Center
		if s[0] < 0 {
			p = p.Sub(dx)
		} else {
			p = p.Add(dx)
		}
		if s[1] < 0 {
			p = p.Sub(dy)
		} else {
			p = p.Add(dy)
		}
		if s[2] < 0 {
			p = p.Sub(dz)
		} else {
			p = p.Add(dz)
		}
		verts[i] = p
	}
	return verts
}

// candidateAxes produces the 15 SAT axes in the fixed order §4.4
// mandates: A's three face axes, B's three face axes, then the nine
// row-major cross products. Parallel-edge pairs normalize to zero and
// are filtered by the caller, not here, so the slice always has 15
// entries and index order is stable for the tie-break rule.
func candidateAxes(a, b OBB) [15]Vec3 {
	aAxes := a.axes()
	bAxes := b.axes()

	var axes [15]Vec3
	axes[0], axes[1], axes[2] = aAxes[0], aAxes[1], aAxes[2]
	axes[3], axes[4], axes[5] = bAxes[0], bAxes[1], bAxes[2]

	idx := 6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[idx] = aAxes[i].Cross(bAxes[j]).NormalizeOrZero()
			idx++
		}
	}
	return axes
}

func projectOntoAxis(verts [8]Vec3, axis Vec3) (min, max Fx) {
	min = verts[0].Dot(axis)
	max = min
	for i := 1; i < 8; i++ {
		d := verts[i].Dot(axis)
		min = fxMin(min, d)
		max = fxMax(max, d)
	}
	return
}

func signedHalfExtent(component, half Fx) Fx {
	if component >= 0 {
		return half
	}
	return half.Neg()
}

// Intersects runs the full 15-axis SAT test (§4.4). On overlap it
// returns the CollisionInfo for the minimum-overlap axis, with ties
// broken by earliest axis in iteration order — which is what makes
// the result reproducible across runs (§4.4 "why 15 axes").
func (a OBB) Intersects(b OBB) (CollisionInfo, bool) {
	axes := candidateAxes(a, b)
	aVerts := a.vertices()
	bVerts := b.vertices()

	var bestAxis Vec3
	var bestOverlap Fx
	found := false

	for _, axis := range axes {
		if axis.Equal(Vec3Zero) {
			continue // degenerate/parallel edge pair: shape violation, silently skipped (§7)
		}

		aMin, aMax := projectOntoAxis(aVerts, axis)
		bMin, bMax := projectOntoAxis(bVerts, axis)
		if aMax < bMin || bMax < aMin {
			return CollisionInfo{}, false
		}

		overlap := fxMin(aMax, bMax).Sub(fxMax(aMin, bMin))
		if !found || overlap < bestOverlap {
			bestOverlap = overlap
			bestAxis = axis
			found = true
		}
	}
	if !found {
		return CollisionInfo{}, false
	}

	normal := bestAxis
	toB := b.Center.Sub(a.Center)
	if normal.Dot(toB) < 0 {
		normal = normal.Neg()
	}

	var d Vec3
	if normal.Dot(toB) > 0 {
		d = normal.Neg()
	} else {
		d = normal
	}

	aRotInv := a.Rotation.Normalize().Conjugate()
	dLocal := aRotInv.RotateVec3(d)
	localSupport := Vec3{
		X: signedHalfExtent(dLocal.X, a.HalfExtents.X),
		Y: signedHalfExtent(dLocal.Y, a.HalfExtents.Y),
		Z: signedHalfExtent(dLocal.Z, a.HalfExtents.Z),
	}
	worldSupport := a.Center.Add(a.Rotation.RotateVec3(localSupport))

	offset := worldSupport.Sub(b.Center).Dot(normal)
	contactPoint := worldSupport.Sub(normal.Scale(offset))

	return CollisionInfo{Point: contactPoint, Normal: normal, Depth: bestOverlap}, true
}
