package boxstep

import (
	"fmt"

	"github.com/google/uuid"
)

// EngineError marks a programming error surfaced during a tick:
// missing required component on a referenced entity, a hierarchy
// cycle, or any other condition the error handling design (§7)
// classifies as abort-worthy rather than recoverable. Stages always
// panic with it; World.Tick recovers the panic and returns the value
// as its error.
type EngineError struct {
	Entity    EntityId
	Condition string
}

func (e EngineError) Error() string {
	return fmt.Sprintf("entity %d: %s", e.Entity, e.Condition)
}

// diagnosticSession tags every panic a World logs with a stable
// per-World id, so a host aggregating logs from many concurrent
// worlds (e.g. several deterministic simulations run side by side for
// replay verification) can correlate which abort came from which
// instance. The engine's only other use of uuid — the teacher reaches
// for it to mint AssetIds, dropped along with the asset pipeline
// (DESIGN.md).
type diagnosticSession struct {
	id uuid.UUID
}

func newDiagnosticSession() diagnosticSession {
	return diagnosticSession{id: uuid.New()}
}

// reportAndRepanic logs the single diagnostic line §7 mandates — the
// offending entity id (when the recovered value carries one) and the
// condition — then re-panics with the original value unchanged so the
// embedding caller, not the engine, decides whether and how to recover.
func (s diagnosticSession) reportAndRepanic(logger Logger, frame uint64, r any) {
	s.log(logger, frame, r)
	panic(r)
}

// reportAsError logs the same single diagnostic line as
// reportAndRepanic but converts the recovered value into a returned
// error instead of re-raising it — this is what World.Tick's deferred
// recover uses, so a panicking stage surfaces as an ordinary error
// return rather than requiring the caller to recover a live panic.
func (s diagnosticSession) reportAsError(logger Logger, frame uint64, r any) error {
	s.log(logger, frame, r)
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

func (s diagnosticSession) log(logger Logger, frame uint64, r any) {
	if engErr, ok := r.(EngineError); ok {
		logger.Errorf("session %s tick %d: entity %d: %s", s.id, frame, engErr.Entity, engErr.Condition)
	} else if err, ok := r.(error); ok {
		logger.Errorf("session %s tick %d: %v", s.id, frame, err)
	} else {
		logger.Errorf("session %s tick %d: %v", s.id, frame, r)
	}
}
