package boxstep

// Commands is the single mutation surface for the world's Ecs. Unlike the
// teacher's Commands (which buffers additions/removals into pending queues
// flushed between stages, because its systems can spawn particles or edit
// voxels mid-frame) ours applies immediately: the resolver, integrator and
// propagator never spawn or destroy entities (spec data model, §3), so there
// is no iteration-in-progress hazard to defer around.
type Commands struct {
	ecs *Ecs
}

func (cmd *Commands) AddEntity(components ...any) EntityId {
	return cmd.ecs.addEntity(components...)
}

func (cmd *Commands) AddComponents(entityId EntityId, components ...any) {
	cmd.ecs.addComponents(entityId, components...)
}

func (cmd *Commands) RemoveComponents(entityId EntityId, components ...any) {
	cmd.ecs.removeComponents(entityId, components...)
}

func (cmd *Commands) RemoveEntity(entityId EntityId) {
	cmd.ecs.removeEntity(entityId)
}

// GetComponent returns a live pointer to entityId's T component, or
// (nil, false) if absent. Free function rather than a method: Go
// methods cannot carry their own type parameters.
func GetComponent[T any](cmd *Commands, entityId EntityId) (*T, bool) {
	return getComponentPtr[T](cmd.ecs, entityId)
}

func (cmd *Commands) GetAllComponents(entityId EntityId) []any {
	ecs := cmd.ecs
	archId, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil
	}
	arch := ecs.archetypes[archId]
	row := arch.entities[entityId]

	res := make([]any, 0, len(arch.componentData))
	for _, componentsSlice := range arch.componentData {
		val := reflectSliceGet(componentsSlice, int(row))
		res = append(res, val.Interface())
	}
	return res
}
