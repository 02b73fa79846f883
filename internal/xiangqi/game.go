package xiangqi

// Game holds one playable game: the current board, whose turn it is, the
// chronological move history, and the terminal status. Apply and Undo are the
// only mutation entry points and both are all-or-nothing: a failed call
// leaves the Game exactly as it was.
//
// Game is not safe for concurrent use; the session registry serializes
// access per game.
type Game struct {
	board   Board
	turn    Side
	history []Move
	status  Status
	winner  Side
}

// NewGame starts from the standard opening position with Red to move.
func NewGame() *Game {
	return &Game{
		board:  NewBoard(),
		turn:   Red,
		status: StatusInProgress,
		winner: NoSide,
	}
}

// newGameFromBoard is a test seam for starting mid-position.
func newGameFromBoard(b Board, turn Side) *Game {
	g := &Game{board: b, turn: turn, status: StatusInProgress, winner: NoSide}
	g.refreshStatus()
	return g
}

// Board returns the current board snapshot. Board is a value, so the caller
// may inspect it while the game advances.
func (g *Game) Board() Board { return g.board }

// Turn returns the side to move.
func (g *Game) Turn() Side { return g.turn }

// Status returns the terminal classification and, for checkmate, the winner
// (NoSide otherwise).
func (g *Game) Status() (Status, Side) { return g.status, g.winner }

// History returns the applied moves in chronological order. The slice is a
// copy; mutating it does not affect the game.
func (g *Game) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

// LegalMovesFrom returns the legal destinations for the piece on from. Empty
// for an empty point, an opponent piece, or a finished game.
func (g *Game) LegalMovesFrom(from Position) []Move {
	if g.status != StatusInProgress {
		return nil
	}
	if g.board.SideAt(from) != g.turn {
		return nil
	}
	return g.board.LegalMovesFrom(from)
}

// Apply validates and plays the move from->to for the side to move, then
// flips the turn and recomputes the terminal status. Returns ErrGameOver
// after checkmate or stalemate, ErrIllegalMove for anything not in the legal
// set (including off-board coordinates and wrong-side pieces).
func (g *Game) Apply(from, to Position) error {
	if g.status != StatusInProgress {
		return ErrGameOver
	}
	if !from.valid() || !to.valid() {
		return ErrIllegalMove
	}
	if g.board.SideAt(from) != g.turn {
		return ErrIllegalMove
	}
	for _, mv := range g.board.LegalMovesFrom(from) {
		if mv.To != to {
			continue
		}
		g.board = g.board.apply(mv)
		g.history = append(g.history, mv)
		g.turn = g.turn.Opponent()
		g.refreshStatus()
		return nil
	}
	return ErrIllegalMove
}

// Undo reverts the last n half-moves, restoring captured pieces and turn
// parity. The position it returns to was non-terminal by construction, so
// status resets to in progress. n = 0 is a no-op; n beyond the history fails
// with ErrNothingToUndo and changes nothing.
func (g *Game) Undo(n int) error {
	if n < 0 || n > len(g.history) {
		return ErrNothingToUndo
	}
	for i := 0; i < n; i++ {
		last := g.history[len(g.history)-1]
		g.history = g.history[:len(g.history)-1]
		g.board = g.board.revert(last)
		g.turn = g.turn.Opponent()
	}
	if n > 0 {
		g.status = StatusInProgress
		g.winner = NoSide
	}
	return nil
}

// refreshStatus classifies the position for the side now to move: no legal
// moves means checkmate when in check (opponent wins) and stalemate (a draw)
// otherwise.
func (g *Game) refreshStatus() {
	if g.board.hasLegalMove(g.turn) {
		g.status = StatusInProgress
		g.winner = NoSide
		return
	}
	if g.board.InCheck(g.turn) {
		g.status = StatusCheckmate
		g.winner = g.turn.Opponent()
		return
	}
	g.status = StatusStalemate
	g.winner = NoSide
}

// InCheck reports whether the side to move is currently in check.
func (g *Game) InCheck() bool {
	return g.board.InCheck(g.turn)
}
