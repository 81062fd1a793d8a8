package skeletal

// The graph store is a pair of generational arenas (slot maps), one for
// vertices and one for edges. Freed slots go on a free list and are
// reused with a bumped generation, which keeps descriptors stable while
// their entity lives and makes stale descriptors detectable afterwards.
// Removal is O(1) plus the incident-list fixups.

// infiniteCost is the sentinel for an unreached vertex during BFS.
const infiniteCost = ^uint32(0)

// vertexMarks are the transient per-vertex fields owned by the graph
// algorithms. They are undefined before an algorithm runs and cleared
// when it returns.
type vertexMarks struct {
	inSpanningTree bool
	cycleParent    VertexID
	bfsParent      VertexID
	bfsCost        uint32
}

type vertexRecord struct {
	gen   uint32
	live  bool
	props VertexProps
	marks vertexMarks

	// incident edge descriptors, grouped by direction
	in  []EdgeID
	out []EdgeID
}

type edgeRecord struct {
	gen   uint32
	live  bool
	props EdgeProps
	from  VertexID
	to    VertexID
}

type vertexArena struct {
	slots []vertexRecord
	free  []uint32
	count int
}

func (a *vertexArena) alloc(props VertexProps) VertexID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, vertexRecord{})
		idx = uint32(len(a.slots) - 1)
	}
	rec := &a.slots[idx]
	rec.gen++
	rec.live = true
	rec.props = props
	rec.marks = vertexMarks{bfsCost: infiniteCost}
	rec.in = nil
	rec.out = nil
	a.count++
	return VertexID{idx: idx, gen: rec.gen}
}

// get returns the record named by id, or nil for a null, stale, or freed
// descriptor.
func (a *vertexArena) get(id VertexID) *vertexRecord {
	if id.Nil() || int(id.idx) >= len(a.slots) {
		return nil
	}
	rec := &a.slots[id.idx]
	if !rec.live || rec.gen != id.gen {
		return nil
	}
	return rec
}

func (a *vertexArena) release(id VertexID) {
	rec := a.get(id)
	if rec == nil {
		return
	}
	rec.live = false
	rec.props = VertexProps{}
	rec.in = nil
	rec.out = nil
	a.free = append(a.free, id.idx)
	a.count--
}

// ids returns the descriptors of all live vertices in slot order.
func (a *vertexArena) ids() []VertexID {
	out := make([]VertexID, 0, a.count)
	for i := range a.slots {
		if a.slots[i].live {
			out = append(out, VertexID{idx: uint32(i), gen: a.slots[i].gen})
		}
	}
	return out
}

type edgeArena struct {
	slots []edgeRecord
	free  []uint32
	count int
}

func (a *edgeArena) alloc(from, to VertexID, props EdgeProps) EdgeID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, edgeRecord{})
		idx = uint32(len(a.slots) - 1)
	}
	rec := &a.slots[idx]
	rec.gen++
	rec.live = true
	rec.props = props
	rec.from = from
	rec.to = to
	a.count++
	return EdgeID{idx: idx, gen: rec.gen}
}

func (a *edgeArena) get(id EdgeID) *edgeRecord {
	if id.Nil() || int(id.idx) >= len(a.slots) {
		return nil
	}
	rec := &a.slots[id.idx]
	if !rec.live || rec.gen != id.gen {
		return nil
	}
	return rec
}

func (a *edgeArena) release(id EdgeID) {
	rec := a.get(id)
	if rec == nil {
		return
	}
	rec.live = false
	rec.props = EdgeProps{}
	rec.from = NilVertex
	rec.to = NilVertex
	a.free = append(a.free, id.idx)
	a.count--
}

func (a *edgeArena) ids() []EdgeID {
	out := make([]EdgeID, 0, a.count)
	for i := range a.slots {
		if a.slots[i].live {
			out = append(out, EdgeID{idx: uint32(i), gen: a.slots[i].gen})
		}
	}
	return out
}

// dropEdgeID removes the first occurrence of id from list.
func dropEdgeID(list []EdgeID, id EdgeID) []EdgeID {
	for i, e := range list {
		if e == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
