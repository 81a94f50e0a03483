package engine

import (
	"math/rand"

	"github.com/daystram/chessim/board"
)

// evaluate rates the position reached by the parent's move. The material
// score is taken for the side to move and negated, so the rating is seen
// from the side that just moved.
func evaluate(b *board.Board, s board.Side) int {
	return b.MaterialScore(s) * -1
}

// selectBest starts from a uniformly random candidate and keeps the strictly
// highest rating for White or the strictly lowest for Black. Ties therefore
// resolve to the random pick or to the earliest candidate that beat it.
func selectBest(r *rand.Rand, mvs []RatedMove, s board.Side) RatedMove {
	pick := r.Intn(len(mvs))
	best := mvs[pick]
	for i, mv := range mvs {
		if i == pick {
			continue
		}
		switch s {
		case board.SideWhite:
			if mv.Rating > best.Rating {
				best = mv
			}
		case board.SideBlack:
			if mv.Rating < best.Rating {
				best = mv
			}
		}
	}
	return best
}
