package main

import (
	"log"
	"math/rand"
	"os"
	"strconv"

	"xiangqi/internal/session"
	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

// selfplay drives the engine through the session boundary the way any
// external player would: read the state, enumerate legal moves, pick one,
// submit it back through ApplyMove. Choice is uniformly random; picking
// good moves is an external collaborator's job, not this repo's.

const maxPlies = 400 // no repetition rule, so cap runaway games

type candidate struct {
	from, to xiangqi.Position
}

func main() {
	games := envInt("GAMES", 10)
	seed := envInt("SEED", 1)
	verbose := os.Getenv("VERBOSE") != ""

	var store *storage.Store
	if path := os.Getenv("DB_PATH"); path != "" {
		var err error
		store, err = storage.New(path)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer store.Close()
	}

	reg := session.NewRegistry(store)
	rng := rand.New(rand.NewSource(int64(seed)))

	var red, black, draws, capped int
	for i := 0; i < games; i++ {
		snap, err := reg.NewGame(xiangqi.Red)
		if err != nil {
			log.Fatalf("new game: %v", err)
		}
		outcome, plies := playOne(reg, snap.SessionID, rng, verbose)
		switch outcome {
		case "red":
			red++
		case "black":
			black++
		case "draw":
			draws++
		default:
			capped++
		}
		log.Printf("game %d: %s after %d half-moves", i+1, outcome, plies)
	}
	log.Printf("done: %d games, red %d, black %d, draws %d, capped %d", games, red, black, draws, capped)
}

// playOne plays random legal moves until the game ends or the ply cap hits.
func playOne(reg *session.Registry, id string, rng *rand.Rand, verbose bool) (string, int) {
	for ply := 1; ply <= maxPlies; ply++ {
		cand, err := allMoves(reg, id)
		if err != nil {
			log.Fatalf("enumerate moves: %v", err)
		}
		if len(cand) == 0 {
			log.Fatalf("session %s: live game with no legal moves", id)
		}
		mv := cand[rng.Intn(len(cand))]

		snap, err := reg.ApplyMove(id, mv.from, mv.to)
		if err != nil {
			log.Fatalf("apply %v->%v: %v", mv.from, mv.to, err)
		}
		if verbose {
			log.Printf("ply %d: %v -> %v\n%s", ply, mv.from, mv.to, snap.Board)
		}
		switch snap.Status {
		case xiangqi.StatusCheckmate:
			return snap.Winner.String(), ply
		case xiangqi.StatusStalemate:
			return "draw", ply
		}
	}
	return "capped", maxPlies
}

// allMoves gathers the side to move's full legal-move set through the
// registry boundary, one LegalMoves call per piece.
func allMoves(reg *session.Registry, id string) ([]candidate, error) {
	snap, err := reg.State(id)
	if err != nil {
		return nil, err
	}
	var cand []candidate
	for r := 0; r < xiangqi.Rows; r++ {
		for c := 0; c < xiangqi.Cols; c++ {
			from, err := xiangqi.NewPosition(r, c)
			if err != nil {
				return nil, err
			}
			if snap.Board.SideAt(from) != snap.Turn {
				continue
			}
			dests, err := reg.LegalMoves(id, from)
			if err != nil {
				return nil, err
			}
			for _, to := range dests {
				cand = append(cand, candidate{from: from, to: to})
			}
		}
	}
	return cand, nil
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("bad %s: %v", key, err)
	}
	return n
}
