package grove

// Frame is one complete scene description: every contributing application's
// root plus the shared-texture table for panels. A Frame handed to
// ApplyFrame must not be modified afterwards.
type Frame struct {
	Roots    []Root
	Textures []TextureBinding
}

// snapshot is an indexed, immutable Frame.
type snapshot struct {
	roots    []*rootState
	textures map[uint32]TextureBinding
}

func newSnapshot(f Frame) *snapshot {
	s := &snapshot{
		roots:    make([]*rootState, 0, len(f.Roots)),
		textures: make(map[uint32]TextureBinding, len(f.Textures)),
	}
	for _, r := range f.Roots {
		s.roots = append(s.roots, newRootState(r))
	}
	for _, tb := range f.Textures {
		s.textures[tb.Owner] = tb
	}
	return s
}

// nodeCount returns the number of authored nodes across every root.
func (s *snapshot) nodeCount() int {
	n := 0
	for _, rs := range s.roots {
		n += len(rs.Nodes)
	}
	return n
}

// ApplyFrame stores f as the pending frame. It replaces any frame that has
// not been picked up yet and never touches the frame currently being
// resolved. Safe to call from any goroutine.
func (r *Renderer) ApplyFrame(f Frame) {
	r.pending.Store(newSnapshot(f))
}

// beginFrame swaps the pending frame in, if there is one.
func (r *Renderer) beginFrame() {
	if s := r.pending.Swap(nil); s != nil {
		r.active = s
	}
}
