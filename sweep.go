package boxstep

// Steps is the compile-time substep count for the sweeper (§4.5, §6
// "Units").
const Steps = 16

// SweepNextOverlap scans Steps candidate positions along displacement
// (the caller passes rigidbody.velocity * dt, per §4.6 step 2) and
// returns the first CollisionInfo produced against other, using the
// moving body's original size and rotation at every sample — the
// sweep is translation-only, rotation is never interpolated (§4.5).
// A zero displacement degenerates to a single sample at position.
func SweepNextOverlap(position, size Vec3, rotation Quat, displacement Vec3, other OBB) (CollisionInfo, bool) {
	if displacement.Equal(Vec3Zero) {
		candidate := OBBFromTransform(position, size, rotation)
		return candidate.Intersects(other)
	}

	step := displacement.Scale(FxOne.Div(FxFromInt(Steps)))
	for i := 0; i < Steps; i++ {
		candidatePos := position.Add(step.Scale(FxFromInt(int32(i))))
		candidate := OBBFromTransform(candidatePos, size, rotation)
		if info, hit := candidate.Intersects(other); hit {
			return info, true
		}
	}
	return CollisionInfo{}, false
}
