package boxstep

import (
	"reflect"
)

func reflectSliceMake(elem reflect.Type) any {
	return reflect.MakeSlice(reflect.SliceOf(elem), 0, 1).Interface()
}

func reflectSliceGet(slice any, idx int) reflect.Value {
	return reflect.ValueOf(slice).Index(idx)
}

func reflectSliceSet(slice any, idx int, val reflect.Value) {
	reflect.ValueOf(slice).Index(idx).Set(val)
}

func reflectSliceAppend(slice any, val reflect.Value) any {
	return reflect.Append(
		reflect.ValueOf(slice),
		val,
	).Interface()
}

func reflectSliceLen(slice any) int {
	return reflect.ValueOf(slice).Len()
}

// getComponentPtr returns a live pointer into an entity's component
// slot, or (nil, false) if the entity doesn't exist or doesn't carry a
// T. Used by single-entity lookups (transform propagation, resolver
// contact handling) that would otherwise need a full query for one row.
func getComponentPtr[T any](ecs *Ecs, id EntityId) (*T, bool) {
	archId, ok := ecs.entityIndex[id]
	if !ok {
		return nil, false
	}
	arch := ecs.archetypes[archId]

	var zero T
	compId, ok := ecs.componentTypeIdMap[reflect.TypeOf(zero)]
	if !ok {
		return nil, false
	}

	data, ok := arch.componentData[compId]
	if !ok {
		return nil, false
	}

	row := arch.entities[id]
	slice := data.([]T)
	return &slice[row], true
}
