package boxstep

// World is the fixed-tick driver (§5, §9 "generic input I"): one Ecs
// instance, its Commands handle, a tick-scoped EventQueue, and the
// FrameInput/ActionSet pair that feed stage 1. It replaces the
// teacher's registrable App/Schedule (app_builder.go, schedule.go) —
// a generic, user-pluggable stage list is exactly what §1 excludes
// ("the generic scheduler/registry plumbing of the host engine"); the
// deterministic core instead runs one fixed, non-pluggable pipeline.
// World is parameterized over the embedder's action type I so a single
// binary can run several independently-typed simulations without the
// driver depending on any particular gameplay action enum.
type World[I any] struct {
	ecs      Ecs
	commands Commands

	Events  EventQueue
	Input   *FrameInput[I]
	Actions *ActionSet[I]

	Frame uint64
	Dt    Fx

	Logger  Logger
	session diagnosticSession

	// IngestActions is tick stage 1 (§5): translate the frame's action
	// list into per-entity velocity writes. Supplied by the embedding
	// gameplay layer at construction — the deterministic core has no
	// opinion on what an action does, only that it runs first and
	// completes before collision resolution begins. A nil hook makes
	// stage 1 a no-op, matching §7's "empty action list: tick produces
	// no simulation-side effect" for shape violations.
	IngestActions func(cmd *Commands, actions []I)
}

// NewWorld constructs an empty World at the given fixed timestep. A
// nil logger installs NewNopLogger, matching the teacher's pattern of
// always having a live Logger to call into (logging.go).
func NewWorld[I any](dt Fx, logger Logger) *World[I] {
	if logger == nil {
		logger = NewNopLogger()
	}
	w := &World[I]{
		Dt:      dt,
		Input:   NewFrameInput[I](64),
		Actions: NewActionSet[I](),
		Logger:  logger,
		session: newDiagnosticSession(),
	}
	w.ecs = MakeEcs()
	w.commands = Commands{ecs: &w.ecs}
	return w
}

// Cmd returns the World's single Commands handle, the mutation surface
// gameplay code spawns/edits entities through between ticks.
func (w *World[I]) Cmd() *Commands { return &w.commands }

// Tick runs exactly one fixed schedule iteration (§5's six-step
// sequence, steps 1-5 — step 6, presentation sync, is explicitly
// outside the tick and is World.Sync): ingest actions, resolve
// collisions, apply friction, integrate bodies, propagate transforms.
// actions replaces the current frame buffer (§6's tick(actions)).
//
// Any panic raised inside a stage — an EngineError or anything else —
// is recovered at this single boundary, logged as the one diagnostic
// line §7 mandates, and returned as an ordinary error; the caller
// decides whether to keep ticking.
func (w *World[I]) Tick(actions []I) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = w.session.reportAsError(w.Logger, w.Frame, r)
		}
	}()

	w.Input.SetFrame(w.Frame, actions)
	w.Events.Reset()

	cmd := &w.commands

	if w.IngestActions != nil {
		w.IngestActions(cmd, w.Input.Actions)
	}

	ResolveCollisions(cmd, &w.Events, w.Dt, w.Frame)
	ApplyFriction(cmd, w.Dt)
	IntegrateBodies(cmd, w.Dt)
	PropagateTransforms(cmd)

	if w.Logger.DebugEnabled() {
		w.Logger.Debugf("tick %d: %d enter, %d stay, %d exit", w.Frame,
			len(w.Events.Enters), len(w.Events.Stays), len(w.Events.Exits))
	}

	w.Frame++
	return nil
}
