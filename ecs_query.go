package boxstep

import (
	"reflect"
	"slices"
)

// Query types with optional filters. Trimmed from the teacher's
// Query1..Query5 to the arities actually exercised by the resolver,
// integrator and transform propagator (Query1..Query3).
type Query1[A any] struct {
	ecs     *Ecs
	with    []componentId
	without []componentId
	any     []componentId
}
type Query2[A, B any] struct {
	ecs     *Ecs
	with    []componentId
	without []componentId
	any     []componentId
}
type Query3[A, B, C any] struct {
	ecs     *Ecs
	with    []componentId
	without []componentId
	any     []componentId
}

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.ecs} }

func (q Query1[A]) WithTypes(types ...any) Query1[A] {
	q.with = append(q.with, idsOfValues(q.ecs, types...)...)
	return q
}
func (q Query1[A]) WithoutTypes(types ...any) Query1[A] {
	q.without = append(q.without, idsOfValues(q.ecs, types...)...)
	return q
}
func (q Query1[A]) WithAnyTypes(types ...any) Query1[A] {
	q.any = append(q.any, idsOfValues(q.ecs, types...)...)
	return q
}

func (q Query2[A, B]) WithTypes(types ...any) Query2[A, B] {
	q.with = append(q.with, idsOfValues(q.ecs, types...)...)
	return q
}
func (q Query2[A, B]) WithoutTypes(types ...any) Query2[A, B] {
	q.without = append(q.without, idsOfValues(q.ecs, types...)...)
	return q
}
func (q Query2[A, B]) WithAnyTypes(types ...any) Query2[A, B] {
	q.any = append(q.any, idsOfValues(q.ecs, types...)...)
	return q
}

func (q Query3[A, B, C]) WithTypes(types ...any) Query3[A, B, C] {
	q.with = append(q.with, idsOfValues(q.ecs, types...)...)
	return q
}
func (q Query3[A, B, C]) WithoutTypes(types ...any) Query3[A, B, C] {
	q.without = append(q.without, idsOfValues(q.ecs, types...)...)
	return q
}
func (q Query3[A, B, C]) WithAnyTypes(types ...any) Query3[A, B, C] {
	q.any = append(q.any, idsOfValues(q.ecs, types...)...)
	return q
}

func idsOfValues(ecs *Ecs, vals ...any) []componentId {
	ids := make([]componentId, 0, len(vals))
	for _, v := range vals {
		t := reflect.TypeOf(v)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		ids = append(ids, ecs.getComponentId(t))
	}
	return ids
}

func archHas(arch *archetype, id componentId) bool {
	_, found := slices.BinarySearch(arch.key, id)
	return found
}
func hasAll(arch *archetype, ids []componentId) bool {
	for _, id := range ids {
		if !archHas(arch, id) {
			return false
		}
	}
	return true
}
func hasAny(arch *archetype, ids []componentId) bool {
	for _, id := range ids {
		if archHas(arch, id) {
			return true
		}
	}
	return false
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		res[ecs.getComponentId(t)] = struct{}{}
	}
	return res
}

func identifyComponents1[A any](ecs *Ecs) componentId {
	var a A
	return ecs.getComponentId(reflect.TypeOf(a))
}
func identifyComponents2[A, B any](ecs *Ecs) (componentId, componentId) {
	var a A
	var b B
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b))
}
func identifyComponents3[A, B, C any](ecs *Ecs) (componentId, componentId, componentId) {
	var a A
	var b B
	var c C
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b)), ecs.getComponentId(reflect.TypeOf(c))
}

// sortedEntities returns an archetype's entity ids in ascending order.
// The teacher iterates `arch.entities` (a Go map) directly, which is
// non-deterministic across runs; every pair-processing invariant this
// engine promises (§5, §8 invariant 1) depends on a stable total order,
// so every Map below sorts by EntityId before calling back.
func sortedEntities(arch *archetype) []EntityId {
	ids := make([]EntityId, 0, len(arch.entities))
	for id := range arch.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// sortedArchetypes returns the Ecs's archetypes in a stable order (by
// archetypeId) so that queries spanning several archetypes still visit
// entities in a reproducible, input-independent sequence.
func sortedArchetypes(ecs *Ecs) []*archetype {
	ids := make([]archetypeId, 0, len(ecs.archetypes))
	for id := range ecs.archetypes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	archs := make([]*archetype, 0, len(ids))
	for _, id := range ids {
		archs = append(archs, ecs.archetypes[id])
	}
	return archs
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponents1[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	var req []componentId
	if _, ok := opt[id1]; !ok {
		req = append(req, id1)
	}
	req = append(req, q.with...)

	for _, arch := range sortedArchetypes(q.ecs) {
		if len(q.without) > 0 && hasAny(arch, q.without) {
			continue
		}
		if len(q.any) > 0 && !hasAny(arch, q.any) {
			continue
		}
		if !hasAll(arch, req) {
			continue
		}

		var comps1 []A
		noA := false
		if data, ok := arch.componentData[id1]; ok {
			comps1 = data.([]A)
		} else if _, ok := opt[id1]; ok {
			noA = true
		} else {
			continue
		}

		for _, entityId := range sortedEntities(arch) {
			row := arch.entities[entityId]
			var a *A
			if !noA {
				a = &comps1[row]
			}
			if !m(entityId, a) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := identifyComponents2[A, B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	var req []componentId
	if _, ok := opt[id1]; !ok {
		req = append(req, id1)
	}
	if _, ok := opt[id2]; !ok {
		req = append(req, id2)
	}
	req = append(req, q.with...)

	for _, arch := range sortedArchetypes(q.ecs) {
		if len(q.without) > 0 && hasAny(arch, q.without) {
			continue
		}
		if len(q.any) > 0 && !hasAny(arch, q.any) {
			continue
		}
		if !hasAll(arch, req) {
			continue
		}

		var comps1 []A
		noA := false
		if data, ok := arch.componentData[id1]; ok {
			comps1 = data.([]A)
		} else if _, ok := opt[id1]; ok {
			noA = true
		} else {
			continue
		}

		var comps2 []B
		noB := false
		if data, ok := arch.componentData[id2]; ok {
			comps2 = data.([]B)
		} else if _, ok := opt[id2]; ok {
			noB = true
		} else {
			continue
		}

		for _, entityId := range sortedEntities(arch) {
			row := arch.entities[entityId]
			var a *A
			if !noA {
				a = &comps1[row]
			}
			var b *B
			if !noB {
				b = &comps2[row]
			}
			if !m(entityId, a, b) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1, id2, id3 := identifyComponents3[A, B, C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	var req []componentId
	if _, ok := opt[id1]; !ok {
		req = append(req, id1)
	}
	if _, ok := opt[id2]; !ok {
		req = append(req, id2)
	}
	if _, ok := opt[id3]; !ok {
		req = append(req, id3)
	}
	req = append(req, q.with...)

	for _, arch := range sortedArchetypes(q.ecs) {
		if len(q.without) > 0 && hasAny(arch, q.without) {
			continue
		}
		if len(q.any) > 0 && !hasAny(arch, q.any) {
			continue
		}
		if !hasAll(arch, req) {
			continue
		}

		var comps1 []A
		noA := false
		if data, ok := arch.componentData[id1]; ok {
			comps1 = data.([]A)
		} else if _, ok := opt[id1]; ok {
			noA = true
		} else {
			continue
		}

		var comps2 []B
		noB := false
		if data, ok := arch.componentData[id2]; ok {
			comps2 = data.([]B)
		} else if _, ok := opt[id2]; ok {
			noB = true
		} else {
			continue
		}

		var comps3 []C
		noC := false
		if data, ok := arch.componentData[id3]; ok {
			comps3 = data.([]C)
		} else if _, ok := opt[id3]; ok {
			noC = true
		} else {
			continue
		}

		for _, entityId := range sortedEntities(arch) {
			row := arch.entities[entityId]
			var a *A
			if !noA {
				a = &comps1[row]
			}
			var b *B
			if !noB {
				b = &comps2[row]
			}
			var c *C
			if !noC {
				c = &comps3[row]
			}
			if !m(entityId, a, b, c) {
				return
			}
		}
	}
}
