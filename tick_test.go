package boxstep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMoveAction struct {
	velocity Vec3
}

// S1 — Falling cube settles on the floor after repeated ticks through
// the full World.Tick pipeline (ingest -> resolve -> friction ->
// integrate -> propagate), rather than calling each stage by hand.
func TestWorldTick_FallingCubeSettles(t *testing.T) {
	w := NewWorld[testMoveAction](FxFromFloat64(1.0/60), nil)
	cmd := w.Cmd()

	// The cube is spawned first so it is "A" in its pair with the floor;
	// a Fixed floor as A would make the resolver skip the pair.
	cubeLocal := LocalTransform{Position: v(0, 10, 0), Size: v(1, 1, 1), Rotation: QuatIdentity}
	cube := cmd.AddEntity(cubeLocal, GlobalTransform(cubeLocal),
		Collider{Size: v(1, 1, 1)},
		RigidBody{Kind: BodyDynamic, Mass: FxOne})

	floorLocal := LocalTransform{Position: v(-50, 0, -50), Size: v(100, 1, 100), Rotation: QuatIdentity}
	cmd.AddEntity(floorLocal, GlobalTransform(floorLocal),
		Collider{Size: v(1, 1, 1), Fixed: true},
		RigidBody{Kind: BodyStatic})

	enterCount := 0
	for i := 0; i < 200; i++ {
		require.NoError(t, w.Tick(nil))
		enterCount += len(w.Events.Enters)
	}

	assert.Equal(t, 1, enterCount)

	local, ok := GetComponent[LocalTransform](cmd, cube)
	require.True(t, ok)
	assert.InDelta(t, 1.0, local.Position.Y.ToFloat64(), 0.01) // S1: cube's Y settles at ~1 (floor top)

	body, ok := GetComponent[RigidBody](cmd, cube)
	require.True(t, ok)
	assert.LessOrEqual(t, body.Velocity.Y.ToFloat64(), 0.001)
}

// IngestActions runs as stage 1, before resolution, so a velocity it
// sets is what the same tick's sweep actually uses.
func TestWorldTick_IngestActionsRunsBeforeResolution(t *testing.T) {
	w := NewWorld[testMoveAction](FxFromFloat64(1.0/60), nil)
	cmd := w.Cmd()

	local := LocalTransform{Position: v(0, 0, 0), Size: v(1, 1, 1), Rotation: QuatIdentity}
	entity := cmd.AddEntity(local, GlobalTransform(local),
		Collider{Size: v(1, 1, 1)},
		RigidBody{Kind: BodyKinematic})

	w.IngestActions = func(cmd *Commands, actions []testMoveAction) {
		for _, a := range actions {
			body, ok := GetComponent[RigidBody](cmd, entity)
			if ok {
				body.Velocity = a.velocity
			}
		}
	}

	require.NoError(t, w.Tick([]testMoveAction{{velocity: v(1, 0, 0)}}))

	local2, ok := GetComponent[LocalTransform](cmd, entity)
	require.True(t, ok)
	assert.InDelta(t, 1.0/60, local2.Position.X.ToFloat64(), 1e-6)
}

func TestWorldTick_EmptyActionListIsANoOp(t *testing.T) {
	w := NewWorld[testMoveAction](FxFromFloat64(1.0/60), nil)
	called := false
	w.IngestActions = func(cmd *Commands, actions []testMoveAction) {
		called = len(actions) > 0
	}
	require.NoError(t, w.Tick(nil))
	assert.False(t, called)
}

// A Parent pointing at an entity that was never spawned is a
// programming error (§7): PropagateTransforms panics with an
// EngineError, and Tick's recover boundary converts it into a returned
// error instead of propagating the panic.
func TestWorldTick_RecoversProgrammingErrorAsReturnedError(t *testing.T) {
	w := NewWorld[testMoveAction](FxFromFloat64(1.0/60), nil)
	cmd := w.Cmd()

	childLocal := LocalTransform{Position: v(0, 0, 0), Size: v(1, 1, 1), Rotation: QuatIdentity}
	child := cmd.AddEntity(childLocal, GlobalTransform{})
	cmd.AddComponents(child, Parent{Entity: EntityId(999)}) // parent never spawned

	err := w.Tick(nil)
	require.Error(t, err)

	var engErr EngineError
	assert.ErrorAs(t, err, &engErr)
}

func TestWorldTick_FrameCounterAdvancesOnlyOnSuccess(t *testing.T) {
	w := NewWorld[testMoveAction](FxFromFloat64(1.0/60), nil)
	require.NoError(t, w.Tick(nil))
	require.NoError(t, w.Tick(nil))
	assert.Equal(t, uint64(2), w.Frame)
}
