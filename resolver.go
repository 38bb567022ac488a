package boxstep

import "slices"

// frictionEpsilonSquared is the 10⁻³ tangential-speed-squared
// threshold below which the friction pass does nothing (§4.6).
var frictionEpsilonSquared = FxFromFloat64(1e-3)

type colliderEntity struct {
	id       EntityId
	global   *GlobalTransform
	collider *Collider
	body     *RigidBody // nil when the entity has no RigidBody
}

// gatherColliderEntities collects every (entity, global_transform,
// collider, rigid_body?) triple and sorts it by entity id, giving the
// stable total order the pair walk and §8 invariant 1 depend on —
// Query's own archetype-then-row order is not globally sorted across
// archetypes that differ only in whether RigidBody is present.
func gatherColliderEntities(cmd *Commands) []colliderEntity {
	var list []colliderEntity
	MakeQuery3[GlobalTransform, Collider, RigidBody](cmd).Map(func(id EntityId, g *GlobalTransform, c *Collider, b *RigidBody) bool {
		list = append(list, colliderEntity{id: id, global: g, collider: c, body: b})
		return true
	}, RigidBody{})

	slices.SortFunc(list, func(a, b colliderEntity) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		default:
			return 0
		}
	})
	return list
}

// ResolveCollisions is tick stage 2 (§5): every ordered pair (e1, e2)
// with e1 < e2 is visited exactly once and resolved with e1 as the
// mover ("A") and e2 as the obstacle ("B") — resolution is
// intentionally asymmetric by id order, not by which entity actually
// has a body (§4.8).
func ResolveCollisions(cmd *Commands, events *EventQueue, dt Fx, frame uint64) {
	entities := gatherColliderEntities(cmd)
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			resolvePair(cmd, events, dt, frame, entities[i], entities[j])
		}
	}
}

func resolvePair(cmd *Commands, events *EventQueue, dt Fx, frame uint64, a, b colliderEntity) {
	if a.collider.Disabled || b.collider.Disabled || a.collider.Fixed {
		return
	}

	bOBB := b.collider.WorldOBB(*b.global)

	var velocity Vec3
	if a.body != nil {
		velocity = a.body.Velocity
	}
	displacement := velocity.Scale(dt)

	aPos := a.global.Position.Add(a.collider.Center)
	aSize := a.global.Size.Mul(a.collider.Size)

	info, hit := SweepNextOverlap(aPos, aSize, a.global.Rotation, displacement, bOBB)
	if !hit {
		if a.collider.Contacts.Has(b.id) {
			a.collider.Contacts.Remove(b.id)
			events.pushExit(CollisionExit{Entity: a.id, Other: b.id})
		}
		return
	}

	if !a.collider.Trigger {
		correction := info.Normal.Scale(info.Depth.Sub(FxEpsilon))
		aLocal, ok := GetComponent[LocalTransform](cmd, a.id)
		if !ok {
			panic(EngineError{Entity: a.id, Condition: "collider missing LocalTransform"})
		}
		aLocal.Position = aLocal.Position.Sub(correction)
	}

	side := NormalToSide(info.Normal)

	var relativeVelocity Vec3
	if a.body != nil {
		relativeVelocity = relativeVelocity.Add(a.body.Velocity)
	}
	if b.body != nil {
		relativeVelocity = relativeVelocity.Sub(b.body.Velocity)
	}

	contact := SurfaceContact{
		Other:            b.id,
		Point:            info.Point,
		Normal:           info.Normal,
		Depth:            info.Depth,
		RelativeVelocity: relativeVelocity,
		Side:             side,
		LastUpdateFrame:  frame,
	}

	if a.collider.Contacts.Has(b.id) {
		a.collider.Contacts.Refresh(contact)
		events.pushStay(CollisionStay{Entity: a.id, Side: side, Info: info})
	} else {
		a.collider.Contacts.Insert(contact)
		events.pushEnter(CollisionEnter{Entity: a.id, Side: side, Info: info})
		events.pushStay(CollisionStay{Entity: a.id, Side: side, Info: info})
	}

	respondToStay(a, info)
}

// respondToStay is the response observer that runs synchronously on
// every CollisionStay (§4.6): a non-Static, non-trigger A moving into
// B along the contact normal has that component of velocity removed.
func respondToStay(a colliderEntity, info CollisionInfo) {
	if a.body == nil || a.body.Kind == BodyStatic || a.collider.Trigger {
		return
	}
	vn := a.body.Velocity.Dot(info.Normal)
	if vn > 0 {
		a.body.Velocity = a.body.Velocity.Sub(info.Normal.Scale(vn))
	}
}

// adhesionSeparationThreshold is the separation-speed ceiling below
// which the adhesion bias (SPEC_FULL.md §4) resists further drift;
// above it a body is considered to be leaving deliberately, not
// settling, and adhesion does not fight the motion.
var adhesionSeparationThreshold = FxFromFloat64(0.5)

// ApplyFriction is tick stage 3 (§5): for every dynamic, non-trigger
// body, every active contact contributes a Coulomb-clamped tangential
// force opposing the stored relative velocity from the resolution
// step that just ran, plus two fields SPEC_FULL.md §4 restores from
// original_source/rigidbody.rs: rolling resistance (extra tangential
// damping on a Top/Bottom contact — the rolling axis for a box resting
// on a floor) and adhesion (a small bias pulling the body back toward
// a slowly-separating contact, so it does not drift off a sticky
// surface on the first frame of zero input).
func ApplyFriction(cmd *Commands, dt Fx) {
	MakeQuery2[RigidBody, Collider](cmd).Map(func(id EntityId, body *RigidBody, collider *Collider) bool {
		if body.Kind != BodyDynamic || collider.Trigger {
			return true
		}

		for _, contact := range collider.Contacts.Ordered() {
			var otherMaterial Material
			if otherCollider, ok := GetComponent[Collider](cmd, contact.Other); ok {
				otherMaterial = otherCollider.Material
			}
			mu := CombinedFriction(collider.Material, otherMaterial)

			// contact.Normal points A toward B (§4.4 step 7), i.e. toward
			// the support A rests on, so the fraction of gravity pressing
			// A into that support is its component ALONG the normal, not
			// its negation — a horizontal (wall) normal correctly yields
			// zero normal force regardless of sign.
			normalForce := body.Mass.Mul(fxMax(0, Gravity.Dot(contact.Normal)))

			tangentV := contact.RelativeVelocity.Sub(contact.Normal.Scale(contact.RelativeVelocity.Dot(contact.Normal)))
			tangentLenSq := tangentV.LengthSquared()
			if tangentLenSq > frictionEpsilonSquared {
				tangentLen := tangentLenSq.Sqrt()
				forceMag := mu.Mul(normalForce)

				if contact.Side == SideTop || contact.Side == SideBottom {
					rolling := CombinedRollingResistance(collider.Material, otherMaterial)
					forceMag = forceMag.Add(rolling.Mul(normalForce))
				}

				maxMag := tangentLen.Mul(body.Mass).Div(dt)
				if forceMag > maxMag {
					forceMag = maxMag
				}

				body.TotalForce = body.TotalForce.Add(tangentV.NormalizeOrZero().Scale(forceMag).Neg())
			}

			adhesion := CombinedAdhesion(collider.Material, otherMaterial)
			vn := contact.RelativeVelocity.Dot(contact.Normal)
			if adhesion > 0 && vn < 0 && vn.Abs() < adhesionSeparationThreshold {
				body.TotalForce = body.TotalForce.Add(contact.Normal.Scale(adhesion.Mul(vn.Neg())))
			}
		}
		return true
	})
}
