package xiangqi

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	Rows = 10
	Cols = 9
)

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// inPalace reports whether (row, col) lies inside side's 3x3 palace:
// columns 3-5, rows 0-2 for Black and rows 7-9 for Red.
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	if side == Black {
		return row >= 0 && row <= 2
	}
	if side == Red {
		return row >= 7 && row <= 9
	}
	return false
}

// soldierDir is the forward row step: Red marches up (-1), Black down (+1).
func soldierDir(side Side) int {
	if side == Red {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// crossedRiver reports whether a piece of side standing on row has crossed
// the river between rows 4 and 5.
func crossedRiver(side Side, row int) bool {
	if side == Red {
		return row < 5
	}
	if side == Black {
		return row > 4
	}
	return false
}

// Board is a value type: applying a move produces a new Board, the receiver
// is never mutated. That keeps history snapshots and concurrent reads cheap.
type Board struct {
	squares [Rows][Cols]Piece
}

// PieceAt returns the piece on p, or 0 for an empty point.
func (b Board) PieceAt(p Position) Piece {
	if !p.valid() {
		return 0
	}
	return b.squares[p.Row][p.Col]
}

// IsEmpty reports whether p holds no piece.
func (b Board) IsEmpty(p Position) bool {
	return b.PieceAt(p) == 0
}

// SideAt returns the owner of the piece on p, or NoSide.
func (b Board) SideAt(p Position) Side {
	return b.PieceAt(p).Side()
}

func (b Board) at(row, col int) Piece {
	return b.squares[row][col]
}

// apply returns the board after m. Pure: Board x Move -> Board.
func (b Board) apply(m Move) Board {
	nb := b
	nb.squares[m.To.Row][m.To.Col] = b.squares[m.From.Row][m.From.Col]
	nb.squares[m.From.Row][m.From.Col] = 0
	return nb
}

// revert returns the board before m was applied, putting the moved piece
// back and restoring the captured piece (if any) on the destination.
func (b Board) revert(m Move) Board {
	nb := b
	nb.squares[m.From.Row][m.From.Col] = b.squares[m.To.Row][m.To.Col]
	nb.squares[m.To.Row][m.To.Col] = m.Captured
	return nb
}

var letterToKind = map[rune]PieceKind{
	'r': Chariot,
	'h': Horse,
	'e': Elephant,
	'a': Advisor,
	'k': General,
	'c': Cannon,
	'p': Soldier,
}

var kindToLetter = map[PieceKind]rune{
	Chariot:  'r',
	Horse:    'h',
	Elephant: 'e',
	Advisor:  'a',
	General:  'k',
	Cannon:   'c',
	Soldier:  'p',
}

// Standard opening layout. Uppercase is Red (bottom), lowercase Black (top).
const initialBoardString = `rheakaehr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RHEAKAEHR`

// NewBoard returns the standard starting position.
func NewBoard() Board {
	b, err := parseBoard(initialBoardString)
	if err != nil {
		panic("xiangqi: bad initial board: " + err.Error())
	}
	return b
}

// parseBoard builds a Board from a 10-line diagram, one rune per point:
// '.' empty, piece letters per letterToKind, uppercase Red.
func parseBoard(diagram string) (Board, error) {
	var b Board
	lines := make([]string, 0, Rows)
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Rows {
		return Board{}, fmt.Errorf("bad board diagram: want %d rows, got %d", Rows, len(lines))
	}
	for r, line := range lines {
		runes := []rune(line)
		if len(runes) != Cols {
			return Board{}, fmt.Errorf("bad board diagram: row %d has %d columns, want %d", r, len(runes), Cols)
		}
		for c, ch := range runes {
			if ch == '.' {
				continue
			}
			kind, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				return Board{}, fmt.Errorf("bad board diagram: unknown piece letter %q", ch)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = Red
			}
			b.squares[r][c] = makePiece(side, kind)
		}
	}
	return b, nil
}

// String renders the board in the same diagram form parseBoard accepts.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b.at(r, c)
			if p == 0 {
				sb.WriteRune('.')
				continue
			}
			ch := kindToLetter[p.Kind()]
			if p.Side() == Red {
				ch = unicode.ToUpper(ch)
			}
			sb.WriteRune(ch)
		}
		if r < Rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
