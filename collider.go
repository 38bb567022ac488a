package boxstep

import "math/bits"

// Side is a single-bit mask so trailing_zeros yields a dense 0..5
// index into ContactSet's per-side counters (§3).
type Side uint8

const (
	SideLeft Side = 1 << iota
	SideRight
	SideBottom
	SideTop
	SideFront
	SideBack
)

const sideCount = 6

// sideIndex returns the dense 0..5 slot for a single-bit Side.
func sideIndex(s Side) int {
	return bits.TrailingZeros8(uint8(s))
}

// NormalToSide picks the dominant absolute component of a (unit)
// normal and maps its sign to a face, ties resolved X > Y > Z (§4.6):
// positive X/Y/Z map to Right/Top/Front, negative to Left/Bottom/Back.
func NormalToSide(normal Vec3) Side {
	ax, ay, az := normal.X.Abs(), normal.Y.Abs(), normal.Z.Abs()

	if ax >= ay && ax >= az {
		if normal.X >= 0 {
			return SideRight
		}
		return SideLeft
	}
	if ay >= az {
		if normal.Y >= 0 {
			return SideTop
		}
		return SideBottom
	}
	if normal.Z >= 0 {
		return SideFront
	}
	return SideBack
}

// SurfaceContact records one active overlap from the perspective of
// the entity that owns the ContactSet (the "A" side of a resolved
// pair, §4.8).
type SurfaceContact struct {
	Other            EntityId
	Point            Vec3
	Normal           Vec3
	Depth            Fx
	RelativeVelocity Vec3
	Side             Side
	LastUpdateFrame  uint64
}

// ContactSet is an insertion-ordered Other -> SurfaceContact map plus
// a dense per-Side count, maintained as the invariant
// sum(sideCounts) == len(order) (§3). Insertion order (not Other's
// numeric id) is preserved in Ordered so iteration matches the order
// contacts were discovered in, which callers may depend on for
// stable event replay.
type ContactSet struct {
	byOther    map[EntityId]SurfaceContact
	order      []EntityId
	sideCounts [sideCount]int
}

func NewContactSet() ContactSet {
	return ContactSet{byOther: make(map[EntityId]SurfaceContact)}
}

func (cs *ContactSet) Has(other EntityId) bool {
	_, ok := cs.byOther[other]
	return ok
}

func (cs *ContactSet) Get(other EntityId) (SurfaceContact, bool) {
	c, ok := cs.byOther[other]
	return c, ok
}

// Insert adds a brand-new contact. Callers must check Has first —
// Insert always appends to the insertion order and increments a side
// counter, so calling it twice for the same Other would desync the
// sum(sideCounts) == len(order) invariant.
func (cs *ContactSet) Insert(c SurfaceContact) {
	if cs.byOther == nil {
		cs.byOther = make(map[EntityId]SurfaceContact)
	}
	cs.byOther[c.Other] = c
	cs.order = append(cs.order, c.Other)
	cs.sideCounts[sideIndex(c.Side)]++
}

// Refresh updates an existing contact in place (same Other, possibly a
// different Side) without disturbing insertion order.
func (cs *ContactSet) Refresh(c SurfaceContact) {
	old := cs.byOther[c.Other]
	cs.sideCounts[sideIndex(old.Side)]--
	cs.byOther[c.Other] = c
	cs.sideCounts[sideIndex(c.Side)]++
}

// Remove deletes a contact, decrementing its side counter and
// compacting the insertion order.
func (cs *ContactSet) Remove(other EntityId) {
	c, ok := cs.byOther[other]
	if !ok {
		return
	}
	cs.sideCounts[sideIndex(c.Side)]--
	delete(cs.byOther, other)
	for i, id := range cs.order {
		if id == other {
			cs.order = append(cs.order[:i], cs.order[i+1:]...)
			break
		}
	}
}

func (cs *ContactSet) Len() int { return len(cs.order) }

func (cs *ContactSet) SideCount(s Side) int { return cs.sideCounts[sideIndex(s)] }

// Ordered returns contacts in insertion order.
func (cs *ContactSet) Ordered() []SurfaceContact {
	res := make([]SurfaceContact, 0, len(cs.order))
	for _, id := range cs.order {
		res = append(res, cs.byOther[id])
	}
	return res
}

// Collider is the resolver's per-entity geometry + flags (§3). The
// effective OBB is (global.position + center, global.size * size,
// global.rotation).
type Collider struct {
	Trigger  bool
	Disabled bool
	Fixed    bool
	Center   Vec3
	Size     Vec3
	Material Material
	Contacts ContactSet
}

// WorldOBB computes the collider's effective oriented box given the
// owning entity's GlobalTransform.
func (c *Collider) WorldOBB(global GlobalTransform) OBB {
	return OBBFromTransform(
		global.Position.Add(c.Center),
		global.Size.Mul(c.Size),
		global.Rotation,
	)
}
