package grove

// MakeGlobalID combines an owner id and a local node id.
func MakeGlobalID(owner, local uint32) GlobalID {
	return GlobalID(uint64(owner)<<32 | uint64(local))
}

// hookLocalID is reserved for the synthetic record that parents a root's
// node 0 to its hook origin. Applications must not use it.
const hookLocalID = ^uint32(0)

func hookGlobalID(owner uint32) GlobalID {
	return MakeGlobalID(owner, hookLocalID)
}

// globalID returns the GlobalID of n inside the root currently being
// traversed.
func (t *traversal) globalID(n *Node) (GlobalID, error) {
	if t.root == nil {
		return 0, ErrUnidentifiedContext
	}
	return MakeGlobalID(t.root.Owner, n.ID), nil
}
