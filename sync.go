package boxstep

import "github.com/go-gl/mathgl/mgl32"

// PresentationTransform is the floating-point, render-facing transform
// World.Sync writes into (§6). This is the one place native floats are
// permitted anywhere in the engine — the output boundary, reached only
// after a tick has fully resolved, never on a path that feeds back
// into the next tick's state (§9 "Forbidden in the core"). Shaped
// after the teacher's mgl32-typed TransformComponent (transform.go)
// rather than a new float3/quat pair, so a host already using mgl32
// for rendering can consume it directly.
type PresentationTransform struct {
	Translation mgl32.Vec3
	Scale       mgl32.Vec3
	Rotation    mgl32.Quat
}

// SyncTarget tags a presentation-world entity with the id of the
// deterministic entity whose GlobalTransform it mirrors (§6).
type SyncTarget struct {
	Entity EntityId
}

// Sync is tick stage 6 (§5) — explicitly outside the fixed tick proper
// — a read-only traversal of presentationCmd's SyncTarget-tagged
// entities, writing each one's PresentationTransform from w's
// corresponding deterministic GlobalTransform: translation =
// position + size/2 (undoing the corner-anchor convention of §4.4 to
// hand back a center point), scale = size, rotation converted to
// float (§6). presentationCmd may belong to the same Ecs as w or to a
// second, purely presentational one; Sync only reads from w, so it may
// run on a separate goroutine from Tick as long as it is never
// interleaved with a live Tick call (§5: "the sync performs only
// read-only copies of completed tick state").
func (w *World[I]) Sync(presentationCmd *Commands) {
	MakeQuery2[SyncTarget, PresentationTransform](presentationCmd).Map(func(_ EntityId, target *SyncTarget, pres *PresentationTransform) bool {
		global, ok := GetComponent[GlobalTransform](&w.commands, target.Entity)
		if !ok {
			return true
		}

		half := global.Size.Scale(FxOne.Div(fxTwo))
		center := global.Position.Add(half)

		pres.Translation = vec3ToFloat(center)
		pres.Scale = vec3ToFloat(global.Size)
		pres.Rotation = quatToFloat(global.Rotation)
		return true
	})
}

func vec3ToFloat(v Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X.ToFloat32(), v.Y.ToFloat32(), v.Z.ToFloat32()}
}

func quatToFloat(q Quat) mgl32.Quat {
	return mgl32.Quat{W: q.W.ToFloat32(), V: mgl32.Vec3{q.X.ToFloat32(), q.Y.ToFloat32(), q.Z.ToFloat32()}}
}
