package boxstep

// ActionKind is the trigger condition a registered action checks
// against a button's state (§6): JustPressed/Pressed/JustReleased.
type ActionKind uint8

const (
	ActionJustPressed ActionKind = iota
	ActionPressed
	ActionJustReleased
)

// maxButtons bounds ButtonState's fixed arrays, matching the teacher's
// mod_input.go Input struct ([256]bool Pressed/JustPressed/JustReleased).
const maxButtons = 256

// ButtonState is the post-translation button snapshot the action
// model consumes (§6): "only the post-translation action list is
// consumed" — the OS polling loop that fills these arrays lives
// outside the core (dropped with mod_input.go's glfw dependency, see
// DESIGN.md); ButtonState is the shape that survives.
type ButtonState struct {
	Pressed      [maxButtons]bool
	JustPressed  [maxButtons]bool
	JustReleased [maxButtons]bool
}

func (s *ButtonState) satisfies(kind ActionKind, button int) bool {
	switch kind {
	case ActionJustPressed:
		return s.JustPressed[button]
	case ActionPressed:
		return s.Pressed[button]
	case ActionJustReleased:
		return s.JustReleased[button]
	default:
		return false
	}
}

// Chord is one alternative set of buttons that must all be held
// simultaneously for an action to fire (§6: "each chord = all listed
// buttons simultaneously").
type Chord []int

func (c Chord) satisfies(kind ActionKind, state *ButtonState) bool {
	if len(c) == 0 {
		return false
	}
	for _, button := range c {
		if !state.satisfies(kind, button) {
			return false
		}
	}
	return true
}

// ActionDef is one registered action (§6): {name, kind, keys, factory}.
// Keys lists alternative chords — any one matching fires the action.
type ActionDef[I any] struct {
	Name    string
	Kind    ActionKind
	Keys    []Chord
	Factory func() I
}

func (a ActionDef[I]) matches(state *ButtonState) bool {
	for _, chord := range a.Keys {
		if chord.satisfies(a.Kind, state) {
			return true
		}
	}
	return false
}

// ActionSet holds the registered actions in registration order and
// collects the current frame's action list from a ButtonState (§6:
// "per action, checks all chords and all buttons; every match appends
// factory() output to the snapshot list"). Order of registration is
// preserved in the emitted list, keeping collection deterministic.
type ActionSet[I any] struct {
	defs []ActionDef[I]
}

func NewActionSet[I any]() *ActionSet[I] {
	return &ActionSet[I]{}
}

func (s *ActionSet[I]) Register(def ActionDef[I]) {
	s.defs = append(s.defs, def)
}

// Collect runs every registered action against state in registration
// order, appending one factory() result per match.
func (s *ActionSet[I]) Collect(state *ButtonState) []I {
	var out []I
	for _, def := range s.defs {
		if def.matches(state) {
			out = append(out, def.Factory())
		}
	}
	return out
}

// frameRecord is one retained frame of the history FrameInput keeps
// for a host's rollback use (§6: "not part of this spec's guarantees").
type frameRecord[I any] struct {
	Frame   uint64
	Actions []I
}

// FrameInput is the tick input container of §6: Actions holds the
// ordered action list for the frame currently being ticked; history
// retains a bounded window of the most recent frames, the current one
// included. Nothing in the
// deterministic core reads history — it exists purely so an embedder
// can replay or rewind, per SPEC_FULL.md's supplemented-features note.
type FrameInput[I any] struct {
	Actions []I

	history    []frameRecord[I]
	historyCap int
}

// NewFrameInput constructs an input container retaining at most
// historyCap frames, the current one included (0 disables history
// retention entirely).
func NewFrameInput[I any](historyCap int) *FrameInput[I] {
	return &FrameInput[I]{historyCap: historyCap}
}

// SetFrame replaces the current frame buffer — tick(actions) in §6 —
// and, if history retention is enabled, immediately records it under
// frame, trimming the oldest entry once historyCap is exceeded.
func (f *FrameInput[I]) SetFrame(frame uint64, actions []I) {
	f.Actions = actions
	if f.historyCap <= 0 {
		return
	}
	f.history = append(f.history, frameRecord[I]{Frame: frame, Actions: actions})
	if len(f.history) > f.historyCap {
		f.history = f.history[len(f.history)-f.historyCap:]
	}
}

// History returns the retained frames, oldest first; the last entry is
// the frame most recently passed to SetFrame.
func (f *FrameInput[I]) History() []frameRecord[I] {
	return f.history
}
