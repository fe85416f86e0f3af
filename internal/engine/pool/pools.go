package pool

import "github.com/dshills/texteng/internal/engine/piece"

// Pools bundles the original and add pools a piece tree resolves pieces
// against. It is a small value type passed around by the tree/document
// layers rather than a singleton, so tests can construct throwaway pairs
// freely.
type Pools struct {
	Original Original
	Add      *Add
}

// Slice resolves p against the matching pool and returns its bytes.
func (p Pools) Slice(pc piece.Piece) []byte {
	switch pc.Pool {
	case piece.Add:
		return p.Add.Slice(pc.Offset, pc.Length)
	default:
		return p.Original.Slice(pc.Offset, pc.Length)
	}
}

// Len returns the length of the named pool.
func (p Pools) Len(pl piece.Pool) uint64 {
	if pl == piece.Add {
		return p.Add.Len()
	}
	return p.Original.Len()
}
