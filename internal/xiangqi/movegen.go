package xiangqi

// Pseudo-legal move generation: movement shape, bounds, and occupancy only.
// Leaving one's own General exposed is filtered later, in legal.go.

var orthoDirs = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
var diagDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}

// The horse's 8 L-shaped destinations, each paired with the single orthogonal
// point that hobbles the leg when occupied.
var horseLegMoves = [8]struct {
	Dr, Dc int // destination offset
	Lr, Lc int // leg offset
}{
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
	{-1, -2, 0, -1},
	{-1, +2, 0, +1},
	{+1, -2, 0, -1},
	{+1, +2, 0, +1},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
}

// pseudoMovesFrom appends every pseudo-legal move for the piece on from.
// No-op if from is empty.
func pseudoMovesFrom(b Board, from Position, moves *[]Move) {
	switch b.PieceAt(from).Kind() {
	case NoKind:
	case General:
		genGeneralMoves(b, from, moves)
	case Advisor:
		genAdvisorMoves(b, from, moves)
	case Elephant:
		genElephantMoves(b, from, moves)
	case Horse:
		genHorseMoves(b, from, moves)
	case Chariot:
		genChariotMoves(b, from, moves)
	case Cannon:
		genCannonMoves(b, from, moves)
	case Soldier:
		genSoldierMoves(b, from, moves)
	}
}

// pseudoMovesForSide appends every pseudo-legal move for all of side's pieces.
func pseudoMovesForSide(b Board, side Side, moves *[]Move) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b.at(r, c).Side() == side {
				pseudoMovesFrom(b, pos(r, c), moves)
			}
		}
	}
}

func appendMove(b Board, from Position, r, c int, side Side, moves *[]Move) {
	to := pos(r, c)
	dst := b.at(r, c)
	if dst == 0 || dst.Side() != side {
		*moves = append(*moves, Move{From: from, To: to, Captured: dst})
	}
}

// General: one orthogonal step, confined to the palace.
func genGeneralMoves(b Board, from Position, moves *[]Move) {
	side := b.PieceAt(from).Side()
	for _, d := range orthoDirs {
		r, c := int(from.Row)+d[0], int(from.Col)+d[1]
		if !onBoard(r, c) || !inPalace(side, r, c) {
			continue
		}
		appendMove(b, from, r, c, side, moves)
	}
}

// Advisor: one diagonal step, confined to the palace.
func genAdvisorMoves(b Board, from Position, moves *[]Move) {
	side := b.PieceAt(from).Side()
	for _, d := range diagDirs {
		r, c := int(from.Row)+d[0], int(from.Col)+d[1]
		if !onBoard(r, c) || !inPalace(side, r, c) {
			continue
		}
		appendMove(b, from, r, c, side, moves)
	}
}

// Elephant: exactly two diagonal steps, blocked by an occupied eye, and
// never across the river.
func genElephantMoves(b Board, from Position, moves *[]Move) {
	side := b.PieceAt(from).Side()
	for _, d := range diagDirs {
		r, c := int(from.Row)+2*d[0], int(from.Col)+2*d[1]
		if !onBoard(r, c) {
			continue
		}
		if crossedRiver(side, r) {
			continue
		}
		// the eye: the midpoint of the 2x2 diagonal
		if b.at(int(from.Row)+d[0], int(from.Col)+d[1]) != 0 {
			continue
		}
		appendMove(b, from, r, c, side, moves)
	}
}

// Horse: L-shape, hobbled when the adjacent orthogonal point toward the
// destination is occupied.
func genHorseMoves(b Board, from Position, moves *[]Move) {
	side := b.PieceAt(from).Side()
	for _, m := range horseLegMoves {
		r, c := int(from.Row)+m.Dr, int(from.Col)+m.Dc
		if !onBoard(r, c) {
			continue
		}
		if b.at(int(from.Row)+m.Lr, int(from.Col)+m.Lc) != 0 {
			continue
		}
		appendMove(b, from, r, c, side, moves)
	}
}

// Chariot: slides orthogonally, capturing the first blocker.
func genChariotMoves(b Board, from Position, moves *[]Move) {
	side := b.PieceAt(from).Side()
	for _, d := range orthoDirs {
		r, c := int(from.Row)+d[0], int(from.Col)+d[1]
		for onBoard(r, c) {
			dst := b.at(r, c)
			if dst == 0 {
				*moves = append(*moves, Move{From: from, To: pos(r, c)})
				r += d[0]
				c += d[1]
				continue
			}
			if dst.Side() != side {
				*moves = append(*moves, Move{From: from, To: pos(r, c), Captured: dst})
			}
			break
		}
	}
}

// Cannon: slides like a chariot when quiet; captures only the first piece
// beyond exactly one screen.
func genCannonMoves(b Board, from Position, moves *[]Move) {
	side := b.PieceAt(from).Side()
	for _, d := range orthoDirs {
		r, c := int(from.Row)+d[0], int(from.Col)+d[1]

		// quiet phase: up to the first occupied point
		for onBoard(r, c) && b.at(r, c) == 0 {
			*moves = append(*moves, Move{From: from, To: pos(r, c)})
			r += d[0]
			c += d[1]
		}
		if !onBoard(r, c) {
			continue
		}

		// capture phase: jump the screen, take the next occupied point
		r += d[0]
		c += d[1]
		for onBoard(r, c) {
			dst := b.at(r, c)
			if dst != 0 {
				if dst.Side() != side {
					*moves = append(*moves, Move{From: from, To: pos(r, c), Captured: dst})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// Soldier: one step forward; after crossing the river, also one step
// sideways. Never backward, never diagonal.
func genSoldierMoves(b Board, from Position, moves *[]Move) {
	side := b.PieceAt(from).Side()
	dir := soldierDir(side)

	r := int(from.Row) + dir
	if onBoard(r, int(from.Col)) {
		appendMove(b, from, r, int(from.Col), side, moves)
	}

	if !crossedRiver(side, int(from.Row)) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		c := int(from.Col) + dc
		if onBoard(int(from.Row), c) {
			appendMove(b, from, int(from.Row), c, side, moves)
		}
	}
}
