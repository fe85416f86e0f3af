package tree

import "github.com/dshills/texteng/internal/engine/piece"

// balance repairs the single local red-red (insertion) or double-black
// (deletion) violation that can occur at (c, l, p, r) after a recursive
// step, producing the four-color-scheme rotations described in
// SPEC_FULL.md 4.2. Any shape not matching one of the known violations is
// passed through unchanged.
func balance(a *arena, c color, l nodeID, p piece.Piece, r nodeID) nodeID {
	// Insertion fixups: a red node with a red child under a black parent.
	if c == black || c == doubleBlack {
		if a.colorOf(l) == red && a.colorOf(a.leftOf(l)) == red {
			ll := a.leftOf(l)
			lr := a.rightOf(l)
			newC := red
			if c == doubleBlack {
				newC = black
			}
			leftNode := a.build(black, a.leftOf(ll), a.pieceOf(ll), a.rightOf(ll))
			rightNode := a.build(black, lr, a.pieceOf(l), r)
			return a.build(newC, leftNode, p, rightNode)
		}
		if a.colorOf(l) == red && a.colorOf(a.rightOf(l)) == red {
			lr := a.rightOf(l)
			newC := red
			if c == doubleBlack {
				newC = black
			}
			leftNode := a.build(black, a.leftOf(l), a.pieceOf(l), a.leftOf(lr))
			rightNode := a.build(black, a.rightOf(lr), p, r)
			return a.build(newC, leftNode, a.pieceOf(lr), rightNode)
		}
		if a.colorOf(r) == red && a.colorOf(a.leftOf(r)) == red {
			rl := a.leftOf(r)
			newC := red
			if c == doubleBlack {
				newC = black
			}
			leftNode := a.build(black, l, p, a.leftOf(rl))
			rightNode := a.build(black, a.rightOf(rl), a.pieceOf(r), a.rightOf(r))
			return a.build(newC, leftNode, a.pieceOf(rl), rightNode)
		}
		if a.colorOf(r) == red && a.colorOf(a.rightOf(r)) == red {
			rr := a.rightOf(r)
			newC := red
			if c == doubleBlack {
				newC = black
			}
			leftNode := a.build(black, l, p, a.leftOf(r))
			rightNode := a.build(black, a.leftOf(rr), a.pieceOf(rr), a.rightOf(rr))
			return a.build(newC, leftNode, a.pieceOf(r), rightNode)
		}
	}

	// Negative-black cases, only reachable when c == doubleBlack.
	if c == doubleBlack {
		if a.colorOf(l) == negativeBlack && a.colorOf(a.leftOf(l)) == black && a.colorOf(a.rightOf(l)) == black {
			lr := a.rightOf(l)
			leftSub := balance(a, black, a.blacken(a.leftOf(l)), a.pieceOf(l), a.leftOf(lr))
			rightNode := a.build(black, a.rightOf(lr), p, r)
			return a.build(black, leftSub, a.pieceOf(lr), rightNode)
		}
		if a.colorOf(r) == negativeBlack && a.colorOf(a.leftOf(r)) == black && a.colorOf(a.rightOf(r)) == black {
			rl := a.leftOf(r)
			leftNode := a.build(black, l, p, a.leftOf(rl))
			rightSub := balance(a, black, a.rightOf(rl), a.pieceOf(r), a.blacken(a.rightOf(r)))
			return a.build(black, leftNode, a.pieceOf(rl), rightSub)
		}
	}

	return a.build(c, l, p, r)
}

// bubble propagates a double-black deficit from a child up to this node:
// if either child is double-black, both children give up one level of
// blackness (redder) and this node absorbs it (blacker), then balance
// resolves any resulting local violation.
func bubble(a *arena, c color, l nodeID, p piece.Piece, r nodeID) nodeID {
	if a.isBB(l) || a.isBB(r) {
		return balance(a, c.blacker(), a.redden(l), p, a.redden(r))
	}
	return a.build(c, l, p, r)
}

// insert places p at global offset pos within the subtree rooted at id,
// splitting an existing piece if pos falls strictly inside it, and
// rebalances on the way back up. The caller is responsible for forcing the
// returned root's color back to black (see View.InsertAt).
func insert(a *arena, id nodeID, pos uint64, p piece.Piece) nodeID {
	if id == nilID {
		return a.build(red, nilID, p, nilID)
	}
	n := a.at(id)
	leftLen := a.lenOf(n.left)
	pieceEnd := leftLen + n.piece.Length

	switch {
	case pos <= leftLen:
		newLeft := insert(a, n.left, pos, p)
		return balance(a, n.color, newLeft, n.piece, n.right)
	case pos >= pieceEnd:
		newRight := insert(a, n.right, pos-pieceEnd, p)
		return balance(a, n.color, n.left, n.piece, newRight)
	default:
		leftPiece, rightPiece := n.piece.Split(pos - leftLen)
		base := a.build(n.color, n.left, leftPiece, n.right)
		withNew := insert(a, base, pos, p)
		return insert(a, withNew, pos+p.Length, rightPiece)
	}
}

// splitAt ensures a node boundary exists at global offset pos, splitting
// whichever piece currently straddles it. A no-op if pos already falls on
// a boundary (including the subtree's own start/end).
func splitAt(a *arena, id nodeID, pos uint64) nodeID {
	if id == nilID || pos == 0 {
		return id
	}
	n := a.at(id)
	leftLen := a.lenOf(n.left)
	pieceEnd := leftLen + n.piece.Length

	switch {
	case pos == leftLen || pos == pieceEnd:
		return id
	case pos < leftLen:
		newLeft := splitAt(a, n.left, pos)
		return a.build(n.color, newLeft, n.piece, n.right)
	case pos > pieceEnd:
		newRight := splitAt(a, n.right, pos-pieceEnd)
		return a.build(n.color, n.left, n.piece, newRight)
	default:
		leftPiece, rightPiece := n.piece.Split(pos - leftLen)
		base := a.build(n.color, n.left, leftPiece, n.right)
		return insert(a, base, pos, rightPiece)
	}
}

// removeMax deletes and returns the rightmost piece in the subtree rooted
// at id, along with the rebalanced subtree that remains.
func removeMax(a *arena, id nodeID) (nodeID, piece.Piece) {
	n := a.at(id)
	if n.right == nilID {
		if n.left == nilID {
			if n.color == red {
				return nilID, n.piece
			}
			return bbID, n.piece
		}
		return a.recolor(n.left, black), n.piece
	}
	newRight, maxPiece := removeMax(a, n.right)
	return bubble(a, n.color, n.left, n.piece, newRight), maxPiece
}

// removeNode deletes the node whose color/children are given, per the
// standard three-shape case split (no children, one child, two children).
func removeNode(a *arena, c color, left, right nodeID) nodeID {
	switch {
	case left == nilID && right == nilID:
		if c == red {
			return nilID
		}
		return bbID
	case left == nilID:
		return a.recolor(right, black)
	case right == nilID:
		return a.recolor(left, black)
	default:
		newLeft, maxPiece := removeMax(a, left)
		return bubble(a, c, newLeft, maxPiece, right)
	}
}

// deleteAt removes the whole node occupying global offset pos (which must
// sit exactly on a boundary, i.e. splitAt has already been applied at both
// ends of the range being removed).
func deleteAt(a *arena, id nodeID, pos uint64) nodeID {
	n := a.at(id)
	leftLen := a.lenOf(n.left)
	pieceEnd := leftLen + n.piece.Length

	switch {
	case pos < leftLen:
		newLeft := deleteAt(a, n.left, pos)
		return bubble(a, n.color, newLeft, n.piece, n.right)
	case pos >= pieceEnd:
		newRight := deleteAt(a, n.right, pos-pieceEnd)
		return bubble(a, n.color, n.left, n.piece, newRight)
	default:
		return removeNode(a, n.color, n.left, n.right)
	}
}

// findAt returns the id of the node whose piece contains pos, and the
// offset of pos relative to the start of that piece.
func findAt(a *arena, id nodeID, pos uint64) (nodeID, uint64, bool) {
	for id != nilID {
		n := a.at(id)
		leftLen := a.lenOf(n.left)
		pieceEnd := leftLen + n.piece.Length
		switch {
		case pos < leftLen:
			id = n.left
		case pos >= pieceEnd:
			pos -= pieceEnd
			id = n.right
		default:
			return id, pos - leftLen, true
		}
	}
	return nilID, 0, false
}
