package xiangqi

// generalPos locates side's General. The second return is false only on
// malformed boards; a well-formed game always has both Generals.
func (b Board) generalPos(side Side) (Position, bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b.at(r, c)
			if p != 0 && p.Kind() == General && p.Side() == side {
				return pos(r, c), true
			}
		}
	}
	return Position{}, false
}

// IsAttacked reports whether target is in bySide's attack set: some piece of
// bySide has target among its pseudo-legal destinations, regardless of whose
// turn it is.
func (b Board) IsAttacked(target Position, bySide Side) bool {
	var moves []Move
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b.at(r, c)
			if p == 0 || p.Side() != bySide {
				continue
			}
			moves = moves[:0]
			pseudoMovesFrom(b, pos(r, c), &moves)
			for _, mv := range moves {
				if mv.To == target {
					return true
				}
			}
		}
	}
	return false
}

// generalsFacing reports the flying-generals configuration: both Generals on
// one column with nothing between them.
func (b Board) generalsFacing() bool {
	red, okR := b.generalPos(Red)
	black, okB := b.generalPos(Black)
	if !okR || !okB || red.Col != black.Col {
		return false
	}
	lo, hi := int(black.Row), int(red.Row)
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if b.at(r, int(red.Col)) != 0 {
			return false
		}
	}
	return true
}

// InCheck reports whether side's General is under attack. The flying-generals
// file counts as an attack on both Generals.
func (b Board) InCheck(side Side) bool {
	if b.generalsFacing() {
		return true
	}
	g, ok := b.generalPos(side)
	if !ok {
		return false
	}
	return b.IsAttacked(g, side.Opponent())
}
