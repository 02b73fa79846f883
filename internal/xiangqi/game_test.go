package xiangqi

import (
	"errors"
	"testing"
)

func TestCannonToCenter(t *testing.T) {
	g := NewGame()
	if err := g.Apply(pos(7, 1), pos(7, 4)); err != nil {
		t.Fatalf("cannon to center: %v", err)
	}

	b := g.Board()
	if b.PieceAt(pos(7, 4)) != makePiece(Red, Cannon) {
		t.Fatal("cannon not on the center column")
	}
	if !b.IsEmpty(pos(7, 1)) {
		t.Fatal("cannon origin not emptied")
	}
	// Everything else identical to the start, and nothing captured.
	want := NewBoard().apply(Move{From: pos(7, 1), To: pos(7, 4)})
	if b != want {
		t.Fatal("board differs from the start beyond the one relocation")
	}
	hist := g.History()
	if len(hist) != 1 || hist[0].Captured != 0 {
		t.Fatalf("want one capture-free history entry, got %v", hist)
	}
	if g.Turn() != Black {
		t.Fatalf("want black to move, got %v", g.Turn())
	}
}

func TestChariotCheckmate(t *testing.T) {
	// Red chariot checks along the open back rank; the soldier covers the
	// escape on (1,4) and the palace columns are otherwise attacked.
	b := mustBoard(t, `R...k....
.........
....P....
.........
.........
.........
.........
.........
.........
...K.....`)
	if !b.InCheck(Black) {
		t.Fatal("black should be in check")
	}
	if got := len(b.LegalMoves(Black)); got != 0 {
		t.Fatalf("black should have no legal moves, got %d", got)
	}

	g := newGameFromBoard(b, Black)
	status, winner := g.Status()
	if status != StatusCheckmate {
		t.Fatalf("want checkmate, got %v", status)
	}
	if winner != Red {
		t.Fatalf("want red as winner, got %v", winner)
	}
}

func TestCheckmateMatchesExhaustiveEnumeration(t *testing.T) {
	b := mustBoard(t, `R...k....
.........
....P....
.........
.........
.........
.........
.........
.........
...K.....`)
	g := newGameFromBoard(b, Black)
	status, _ := g.Status()

	inCheck := b.InCheck(Black)
	anyLegal := false
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b.SideAt(pos(r, c)) != Black {
				continue
			}
			if len(b.LegalMovesFrom(pos(r, c))) > 0 {
				anyLegal = true
			}
		}
	}
	if (status == StatusCheckmate) != (inCheck && !anyLegal) {
		t.Fatalf("checkmate classification disagrees with enumeration: status=%v inCheck=%v anyLegal=%v",
			status, inCheck, anyLegal)
	}
}

func TestStalemateIsDraw(t *testing.T) {
	// The two soldiers cover every palace exit without giving check. A side
	// with no pieces to move draws; it does not lose.
	b := mustBoard(t, `....k....
...P.P...
.........
.........
.........
.........
.........
.........
.........
...K.....`)
	if b.InCheck(Black) {
		t.Fatal("black must not be in check for stalemate")
	}
	g := newGameFromBoard(b, Black)
	status, winner := g.Status()
	if status != StatusStalemate {
		t.Fatalf("want stalemate, got %v", status)
	}
	if winner != NoSide {
		t.Fatalf("stalemate is a draw, got winner %v", winner)
	}
}

func TestApplyUndoRoundTripForEveryOpeningMove(t *testing.T) {
	start := NewGame()
	wantBoard := start.Board()

	for _, mv := range NewBoard().LegalMoves(Red) {
		g := NewGame()
		if err := g.Apply(mv.From, mv.To); err != nil {
			t.Fatalf("apply %v->%v: %v", mv.From, mv.To, err)
		}
		if err := g.Undo(1); err != nil {
			t.Fatalf("undo after %v->%v: %v", mv.From, mv.To, err)
		}
		if g.Board() != wantBoard {
			t.Fatalf("board not restored after %v->%v", mv.From, mv.To)
		}
		if g.Turn() != Red {
			t.Fatalf("turn not restored after %v->%v", mv.From, mv.To)
		}
		if status, _ := g.Status(); status != StatusInProgress {
			t.Fatalf("status not restored after %v->%v", mv.From, mv.To)
		}
		if len(g.History()) != 0 {
			t.Fatalf("history not truncated after %v->%v", mv.From, mv.To)
		}
	}
}

func TestUndoTwoReturnsToStart(t *testing.T) {
	g := NewGame()
	if err := g.Apply(pos(7, 1), pos(7, 4)); err != nil {
		t.Fatalf("red move: %v", err)
	}
	if err := g.Apply(pos(0, 1), pos(2, 2)); err != nil {
		t.Fatalf("black move: %v", err)
	}
	if err := g.Undo(2); err != nil {
		t.Fatalf("undo 2: %v", err)
	}
	if g.Board() != NewBoard() {
		t.Fatal("board not back at the starting position")
	}
	if g.Turn() != Red {
		t.Fatalf("want red to move, got %v", g.Turn())
	}
}

func TestUndoRestoresCapturedPiece(t *testing.T) {
	g := NewGame()
	// Cannon to center, a quiet black reply, then cannon takes the soldier
	// on the center column.
	steps := []struct{ from, to Position }{
		{pos(7, 1), pos(7, 4)},
		{pos(0, 1), pos(2, 2)},
		{pos(7, 4), pos(3, 4)},
	}
	for _, s := range steps {
		if err := g.Apply(s.from, s.to); err != nil {
			t.Fatalf("apply %v->%v: %v", s.from, s.to, err)
		}
	}
	hist := g.History()
	if got := hist[len(hist)-1].Captured; got != makePiece(Black, Soldier) {
		t.Fatalf("want captured black soldier, got %v", got)
	}

	if err := g.Undo(1); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if g.Board().PieceAt(pos(3, 4)) != makePiece(Black, Soldier) {
		t.Fatal("captured soldier not restored")
	}
	if g.Board().PieceAt(pos(7, 4)) != makePiece(Red, Cannon) {
		t.Fatal("cannon not moved back")
	}
}

func TestUndoDepthBeyondHistory(t *testing.T) {
	g := NewGame()
	if err := g.Undo(1); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("want ErrNothingToUndo, got %v", err)
	}
	if err := g.Apply(pos(7, 1), pos(7, 4)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := g.Undo(2); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("want ErrNothingToUndo, got %v", err)
	}
	// The failed undo must not have touched anything.
	if len(g.History()) != 1 || g.Turn() != Black {
		t.Fatal("failed undo mutated the game")
	}
}

func TestUndoZeroIsNoOp(t *testing.T) {
	g := NewGame()
	if err := g.Apply(pos(7, 1), pos(7, 4)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	before := g.Board()
	if err := g.Undo(0); err != nil {
		t.Fatalf("undo 0: %v", err)
	}
	if g.Board() != before || g.Turn() != Black || len(g.History()) != 1 {
		t.Fatal("undo(0) changed the game")
	}
}

func TestIllegalMovesLeaveGameUntouched(t *testing.T) {
	g := NewGame()
	before := g.Board()

	cases := []struct {
		name     string
		from, to Position
	}{
		{"empty origin", pos(5, 5), pos(5, 6)},
		{"wrong side", pos(0, 0), pos(1, 0)},
		{"bad shape", pos(9, 0), pos(8, 1)},
		{"friendly destination", pos(9, 0), pos(9, 1)},
		{"off board", pos(9, 0), pos(10, 0)},
	}
	for _, c := range cases {
		if err := g.Apply(c.from, c.to); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("%s: want ErrIllegalMove, got %v", c.name, err)
		}
	}
	if g.Board() != before || g.Turn() != Red || len(g.History()) != 0 {
		t.Fatal("failed applies mutated the game")
	}
}

func TestApplyAfterGameOver(t *testing.T) {
	b := mustBoard(t, `R...k....
.........
....P....
.........
.........
.........
.........
.........
.........
...K.....`)
	g := newGameFromBoard(b, Black)
	if err := g.Apply(pos(0, 4), pos(1, 4)); !errors.Is(err, ErrGameOver) {
		t.Fatalf("want ErrGameOver, got %v", err)
	}
	if moves := g.LegalMovesFrom(pos(0, 4)); moves != nil {
		t.Fatal("finished game offered legal moves")
	}
}

func TestUndoOutOfCheckmate(t *testing.T) {
	// Black wanders its chariot away from the back rank, Red mates with the
	// chariot to the corner, then Black takes both half-moves back.
	b := mustBoard(t, `....k....
....r....
....P....
.........
R........
.........
.........
.........
.........
...K.....`)
	g := newGameFromBoard(b, Black)
	if status, _ := g.Status(); status != StatusInProgress {
		t.Fatalf("want in progress, got %v", status)
	}
	if err := g.Apply(pos(1, 4), pos(1, 8)); err != nil {
		t.Fatalf("black move: %v", err)
	}
	if err := g.Apply(pos(4, 0), pos(0, 0)); err != nil {
		t.Fatalf("red mating move: %v", err)
	}
	if status, winner := g.Status(); status != StatusCheckmate || winner != Red {
		t.Fatalf("want red checkmate, got %v/%v", status, winner)
	}

	if err := g.Undo(2); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if status, winner := g.Status(); status != StatusInProgress || winner != NoSide {
		t.Fatalf("undo did not reset status: %v/%v", status, winner)
	}
	if g.Turn() != Black {
		t.Fatalf("want black to move after undo, got %v", g.Turn())
	}
}
