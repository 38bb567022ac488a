package boxstep

// RigidBodyKind tags a RigidBody's integration behavior. Kept as a
// plain enum switched on in IntegrateBodies rather than virtual
// dispatch (no interface methods per variant) — the teacher's
// physics.go does the same for its body kinds.
type RigidBodyKind uint8

const (
	BodyStatic RigidBodyKind = iota
	BodyKinematic
	BodyDynamic
)

// RigidBody mirrors §3's data model exactly; AngularDamping is carried
// but not consumed by the integrator (no angular velocity integration
// in this engine, see SPEC_FULL.md's supplemented-features notes) —
// kept for a host that wants to read/write it consistently with
// Friction/Restitution rather than dropping it outright.
type RigidBody struct {
	Kind           RigidBodyKind
	Velocity       Vec3
	Mass           Fx
	LinearDamping  Fx
	AngularDamping Fx
	Friction       Fx
	Restitution    Fx
	TotalForce     Vec3
	TotalTorque    Vec3
	Freeze         bool
}

// Gravity is the fixed world gravity vector (§6 "Units": -9.81 on Y).
var Gravity = Vec3{Y: FxFromFloat64(-9.81)}

// IntegrateBodies is tick stage 4 (§5): gravity, linear damping, force
// integration and position advance for Dynamic bodies; position-only
// advance for Kinematic; Static bodies are skipped entirely, their
// position is never written (§4.7).
func IntegrateBodies(cmd *Commands, dt Fx) {
	MakeQuery2[RigidBody, LocalTransform](cmd).Map(func(id EntityId, body *RigidBody, local *LocalTransform) bool {
		if body.Freeze {
			return true
		}

		switch body.Kind {
		case BodyStatic:
			// position not written

		case BodyDynamic:
			body.TotalForce = body.TotalForce.Add(Gravity.Scale(body.Mass))
			body.TotalForce = body.TotalForce.Add(body.Velocity.Scale(body.LinearDamping).Neg())

			accel := body.TotalForce.Div(body.Mass)
			body.Velocity = body.Velocity.Add(accel.Scale(dt))
			local.Position = local.Position.Add(body.Velocity.Scale(dt))

			body.TotalForce = Vec3Zero
			body.TotalTorque = Vec3Zero

		case BodyKinematic:
			local.Position = local.Position.Add(body.Velocity.Scale(dt))
		}
		return true
	})
}
