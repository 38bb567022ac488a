package boxstep

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// World.Sync copies a completed tick's GlobalTransform into a
// separate presentation world's float-facing PresentationTransform
// (§6): translation is the corner-anchored box's center, scale is
// size, rotation converts to mgl32.Quat.
func TestWorldSync_CopiesGlobalTransformIntoPresentation(t *testing.T) {
	w := NewWorld[testMoveAction](FxFromFloat64(1.0/60), nil)
	cmd := w.Cmd()

	local := LocalTransform{Position: v(2, 4, 6), Size: v(2, 2, 2), Rotation: QuatIdentity}
	detEntity := cmd.AddEntity(local, GlobalTransform(local))

	presEcs := MakeEcs()
	presCmd := &Commands{ecs: &presEcs}
	presEntity := presCmd.AddEntity(
		SyncTarget{Entity: detEntity},
		PresentationTransform{},
	)

	w.Sync(presCmd)

	pres, ok := GetComponent[PresentationTransform](presCmd, presEntity)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{3, 5, 7}, pres.Translation) // position + size/2
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, pres.Scale)
	assert.Equal(t, mgl32.Quat{W: 1, V: mgl32.Vec3{0, 0, 0}}, pres.Rotation)
}

func TestWorldSync_SkipsUnknownTarget(t *testing.T) {
	w := NewWorld[testMoveAction](FxFromFloat64(1.0/60), nil)

	presEcs := MakeEcs()
	presCmd := &Commands{ecs: &presEcs}
	presEntity := presCmd.AddEntity(
		SyncTarget{Entity: EntityId(9999)},
		PresentationTransform{Scale: mgl32.Vec3{9, 9, 9}},
	)

	assert.NotPanics(t, func() { w.Sync(presCmd) })

	pres, ok := GetComponent[PresentationTransform](presCmd, presEntity)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{9, 9, 9}, pres.Scale) // untouched
}
