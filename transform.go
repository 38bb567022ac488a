package boxstep

import "slices"

// LocalTransform is authored/gameplay-driven: position, size (not
// scale — OBBs are corner-anchored boxes, §4.4) and rotation relative
// to a Parent, or to the world if there is none.
type LocalTransform struct {
	Position Vec3
	Size     Vec3
	Rotation Quat
}

// GlobalTransform is the propagated, read-only-to-gameplay result
// consumed by collision and presentation sync.
type GlobalTransform struct {
	Position Vec3
	Size     Vec3
	Rotation Quat
}

// Parent marks an entity as a child of another; absence means the
// entity is a hierarchy root.
type Parent struct {
	Entity EntityId
}

// PropagateTransforms runs the two-pass propagation of §4.3: first a
// write-back of every entity's LocalTransform into its GlobalTransform,
// then, in parent-before-child order, overwriting each child's global
// with its parent's (already-updated) global composed with the
// child's local. The order is produced by a topological sort of the
// Parent relation broken by stable entity id, so propagation is
// reproducible across runs regardless of archetype/map iteration order.
func PropagateTransforms(cmd *Commands) {
	MakeQuery2[LocalTransform, GlobalTransform](cmd).Map(func(id EntityId, local *LocalTransform, global *GlobalTransform) bool {
		global.Position = local.Position
		global.Size = local.Size
		global.Rotation = local.Rotation
		return true
	})

	for _, id := range topoSortChildren(cmd) {
		parent, ok := GetComponent[Parent](cmd, id)
		if !ok {
			continue // root: write-back above already finalized it
		}
		local, ok := GetComponent[LocalTransform](cmd, id)
		if !ok {
			continue
		}
		global, ok := GetComponent[GlobalTransform](cmd, id)
		if !ok {
			continue
		}
		parentGlobal, ok := GetComponent[GlobalTransform](cmd, parent.Entity)
		if !ok {
			panic(EngineError{Entity: id, Condition: "parent entity missing GlobalTransform"})
		}

		global.Position = parentGlobal.Position.Add(local.Position)
		global.Size = parentGlobal.Size.Mul(local.Size)
		global.Rotation = parentGlobal.Rotation.Mul(local.Rotation).Normalize()
	}
}

// topoSortChildren returns every entity that carries a Parent
// component, ordered so that no child precedes its parent, breaking
// ties (and resolving independent subtrees) by ascending entity id.
// A Parent cycle is a programming error (§7) and panics rather than
// looping forever.
func topoSortChildren(cmd *Commands) []EntityId {
	var withParent []EntityId
	parentOf := make(map[EntityId]EntityId)
	MakeQuery1[Parent](cmd).Map(func(id EntityId, p *Parent) bool {
		withParent = append(withParent, id)
		parentOf[id] = p.Entity
		return true
	})
	slices.Sort(withParent)

	depthOf := make(map[EntityId]int, len(withParent))
	var depth func(id EntityId, visiting map[EntityId]bool) int
	depth = func(id EntityId, visiting map[EntityId]bool) int {
		if d, ok := depthOf[id]; ok {
			return d
		}
		parent, hasParent := parentOf[id]
		if !hasParent {
			depthOf[id] = 0
			return 0
		}
		if visiting[id] {
			panic(EngineError{Entity: id, Condition: "hierarchy cycle detected during transform propagation"})
		}
		visiting[id] = true
		d := depth(parent, visiting) + 1
		visiting[id] = false
		depthOf[id] = d
		return d
	}

	for _, id := range withParent {
		depth(id, map[EntityId]bool{})
	}

	ordered := make([]EntityId, len(withParent))
	copy(ordered, withParent)
	slices.SortStableFunc(ordered, func(a, b EntityId) int {
		da, db := depthOf[a], depthOf[b]
		if da != db {
			return da - db
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return ordered
}
