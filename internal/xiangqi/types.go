package xiangqi

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove covers every way a requested move can fail validation:
	// malformed coordinates, wrong-side piece, movement-shape violation, or
	// exposing one's own General (including the flying-generals file).
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned by mutating calls after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")
	// ErrNothingToUndo is returned when the undo depth exceeds the history.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Side identifies a player. Red moves first.
type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) Opponent() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

// PieceKind is the closed set of Xiangqi piece types. The move generator
// dispatches on it with a single exhaustive switch.
type PieceKind int8

const (
	NoKind PieceKind = iota
	General
	Advisor
	Elephant
	Horse
	Chariot
	Cannon
	Soldier
)

func (k PieceKind) String() string {
	switch k {
	case General:
		return "general"
	case Advisor:
		return "advisor"
	case Elephant:
		return "elephant"
	case Horse:
		return "horse"
	case Chariot:
		return "chariot"
	case Cannon:
		return "cannon"
	case Soldier:
		return "soldier"
	}
	return "none"
}

// Piece packs kind and side into one int8: 0 is empty, positive is Red,
// negative is Black, the magnitude is the PieceKind.
type Piece int8

func makePiece(side Side, kind PieceKind) Piece {
	if kind == NoKind || side == NoSide {
		return 0
	}
	if side == Red {
		return Piece(kind)
	}
	return -Piece(kind)
}

func (p Piece) Kind() PieceKind {
	if p < 0 {
		return PieceKind(-p)
	}
	return PieceKind(p)
}

func (p Piece) Side() Side {
	switch {
	case p == 0:
		return NoSide
	case p > 0:
		return Red
	}
	return Black
}

func (p Piece) String() string {
	if p == 0 {
		return "empty"
	}
	return p.Side().String() + " " + p.Kind().String()
}

// Position is an intersection point on the 10x9 board. Row 0 is Black's back
// rank, row 9 is Red's. Values produced by NewPosition are always on board.
type Position struct {
	Row int8 `json:"row"`
	Col int8 `json:"col"`
}

// NewPosition validates coordinates at construction; an off-board position is
// an error here, never a runtime state.
func NewPosition(row, col int) (Position, error) {
	if !onBoard(row, col) {
		return Position{}, fmt.Errorf("position (%d,%d) off board: %w", row, col, ErrIllegalMove)
	}
	return Position{Row: int8(row), Col: int8(col)}, nil
}

func pos(row, col int) Position {
	return Position{Row: int8(row), Col: int8(col)}
}

func (p Position) valid() bool {
	return onBoard(int(p.Row), int(p.Col))
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Move records a relocation plus whatever stood on the destination, so that
// undo can restore the captured piece.
type Move struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Captured Piece    `json:"captured"`
}

// Status classifies a game. Stalemate is a draw, matching how the reference
// ruleset scores a side with no pieces to move.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCheckmate  Status = "checkmate"
	StatusStalemate  Status = "stalemate"
)
