package boxstep

// CollisionEnter fires the tick A first overlaps another collider.
// Info holds the contact point, normal and depth; the other entity's
// id is not part of the event.
type CollisionEnter struct {
	Entity EntityId
	Side   Side
	Info   CollisionInfo
}

// CollisionStay fires every tick the overlap persists, including the
// same tick as CollisionEnter (§4.6).
type CollisionStay struct {
	Entity EntityId
	Side   Side
	Info   CollisionInfo
}

// CollisionExit fires the tick A ceases to overlap other.
type CollisionExit struct {
	Entity EntityId
	Other  EntityId
}

// EventQueue is the tick-scoped, append-only sink the resolver writes
// into. Simplified from the teacher's Commands deferred-mutation queue
// (commands.go) — events here are pure notifications, never replayed
// as mutations, so there is no flush/apply step, only Reset between
// ticks (§9: "do not use runtime-dispatched listener lists across tick
// boundaries").
type EventQueue struct {
	Enters []CollisionEnter
	Stays  []CollisionStay
	Exits  []CollisionExit
}

func (q *EventQueue) Reset() {
	q.Enters = q.Enters[:0]
	q.Stays = q.Stays[:0]
	q.Exits = q.Exits[:0]
}

func (q *EventQueue) pushEnter(e CollisionEnter) { q.Enters = append(q.Enters, e) }
func (q *EventQueue) pushStay(e CollisionStay)   { q.Stays = append(q.Stays, e) }
func (q *EventQueue) pushExit(e CollisionExit)   { q.Exits = append(q.Exits, e) }
