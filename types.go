package linkstore

// slotState is the staged state of a slot's payload bytes.
type slotState int

const (
	// stateUnchanged means the bytes are exactly as discovered on disk.
	stateUnchanged slotState = iota
	// stateSet means embed() staged new bytes pending Finish().
	stateSet
)

// slot is the atomic unit managed by the Embedder: one occurrence of a named
// value at a fixed file offset.
type slot struct {
	// absoluteOffset is the byte offset, from the start of the outermost
	// file, at which the payload begins. Never changes after discovery.
	absoluteOffset uint64

	// size is the payload length in bytes. Never changes after discovery.
	size uint64

	// littleEndian describes the containing object's declared data order,
	// which governs how the payload is interpreted. It never changes.
	littleEndian bool

	state slotState
	bytes []byte // the staged payload: the Unchanged bytes, or the Set bytes
}

func (s *slot) currentBytes() []byte {
	return s.bytes
}

func (s *slot) stage(b []byte) {
	s.bytes = b
	s.state = stateSet
}

// slotGroup is a "scalar or vector" representation of the one-or-many slots
// sharing a name: most names occur exactly once, so the common case is kept
// inline without allocating a backing slice. Grounded on the original
// implementation's MaybeScalar<T>.
type slotGroup struct {
	first slot
	rest  []*slot // nil for the single-occurrence case
}

func newSlotGroup(s slot) *slotGroup {
	return &slotGroup{first: s}
}

func (g *slotGroup) append(s slot) {
	g.rest = append(g.rest, &s)
}

// slots returns every slot descriptor sharing this group's name, in
// discovery order.
func (g *slotGroup) slots() []*slot {
	out := make([]*slot, 0, 1+len(g.rest))
	out = append(out, &g.first)
	out = append(out, g.rest...)
	return out
}

// directory maps slot name to its one-or-many descriptors. Insertion order is
// irrelevant; lookup is by name.
type directory map[string]*slotGroup

func (d directory) insert(name string, s slot) {
	if existing, ok := d[name]; ok {
		existing.append(s)
		return
	}
	d[name] = newSlotGroup(s)
}
