package xiangqi

// legalFilter keeps the pseudo-legal moves that do not expose the mover's own
// General, simulating each on a scratch board. A move that would capture an
// enemy General is rejected outright: correct play can never offer one, but a
// caller-supplied move must not crash the engine.
func legalFilter(b Board, side Side, pseudo []Move) []Move {
	out := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		if mv.Captured.Kind() == General {
			continue
		}
		if b.apply(mv).InCheck(side) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// LegalMovesFrom returns the legal moves for the piece on from, or nil if
// from is empty.
func (b Board) LegalMovesFrom(from Position) []Move {
	p := b.PieceAt(from)
	if p == 0 {
		return nil
	}
	var pseudo []Move
	pseudoMovesFrom(b, from, &pseudo)
	return legalFilter(b, p.Side(), pseudo)
}

// LegalMoves returns every legal move for side, the union across all of its
// pieces.
func (b Board) LegalMoves(side Side) []Move {
	var pseudo []Move
	pseudoMovesForSide(b, side, &pseudo)
	return legalFilter(b, side, pseudo)
}

// hasLegalMove is LegalMoves with an early exit, for terminal detection.
func (b Board) hasLegalMove(side Side) bool {
	var pseudo []Move
	pseudoMovesForSide(b, side, &pseudo)
	for _, mv := range pseudo {
		if mv.Captured.Kind() == General {
			continue
		}
		if !b.apply(mv).InCheck(side) {
			return true
		}
	}
	return false
}
