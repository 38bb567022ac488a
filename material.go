package boxstep

// Material holds the surface properties consulted by the friction pass,
// including the rolling-resistance/adhesion fields ApplyFriction reads
// (see SPEC_FULL.md supplemented features).
type Material struct {
	Friction          Fx
	Restitution       Fx
	RollingResistance Fx
	Adhesion          Fx
}

// CombinedFriction is sqrt(a*b) (§3, §4.6).
func CombinedFriction(a, b Material) Fx {
	return a.Friction.Mul(b.Friction).Sqrt()
}

// CombinedAdhesion is the larger of the two adhesion coefficients.
func CombinedAdhesion(a, b Material) Fx {
	return fxMax(a.Adhesion, b.Adhesion)
}

// CombinedRollingResistance mirrors CombinedFriction's sqrt blend.
// ApplyFriction adds it to the tangential friction force on Top/Bottom
// contacts; there is no angular velocity integration behind it.
func CombinedRollingResistance(a, b Material) Fx {
	return a.RollingResistance.Mul(b.RollingResistance).Sqrt()
}
