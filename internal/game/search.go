package game

import (
	"context"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultDepth is the search depth of the computer player.
const DefaultDepth = 5

const (
	negInf = math.MinInt
	posInf = math.MaxInt
)

// Engine runs minimax with alpha-beta pruning for a fixed maximizing side.
// Searches never mutate the board they are given.
type Engine struct {
	Depth     int
	Maximizer Side
	// Parallel searches the root candidates concurrently, Workers at a time
	// (NumCPU when zero).
	Parallel bool
	Workers  int

	nodes atomic.Int64
}

type Result struct {
	Move    Move          `json:"move"`
	Score   int           `json:"score"`
	Depth   int           `json:"depth"`
	Nodes   int64         `json:"nodes"`
	Elapsed time.Duration `json:"elapsed"`
}

func NewEngine(depth int, maximizer Side) *Engine {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Engine{Depth: depth, Maximizer: maximizer}
}

// Search returns the minimax value of b and, when the node has children, a
// move reaching it. The score is exact; the move is only as good as
// alpha-beta makes it, since a pruned child whose bound equals the best
// value can replace it. BestMove is the exact last-max selector.
// A board that is not full but has no legal move is scored like a leaf.
func (e *Engine) Search(b Board, depth, alpha, beta int, maximizing bool) (int, Move, bool) {
	e.nodes.Add(1)
	if depth <= 0 || IsTerminal(b) {
		return Evaluate(b, e.Maximizer), Move{}, false
	}

	moves := LegalMoves(b)
	if len(moves) == 0 {
		return Evaluate(b, e.Maximizer), Move{}, false
	}

	var best Move
	if maximizing {
		maxEval := negInf
		for _, m := range moves {
			eval, _, _ := e.Search(ApplyMove(b, m.Row, m.Col, e.Maximizer), depth-1, alpha, beta, false)
			if eval >= maxEval {
				maxEval = eval
				best = m
			}
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval, best, true
	}

	minEval := posInf
	for _, m := range moves {
		eval, _, _ := e.Search(ApplyMove(b, m.Row, m.Col, e.Maximizer.Opponent()), depth-1, alpha, beta, true)
		if eval <= minEval {
			minEval = eval
			best = m
		}
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval, best, true
}

// BestMove picks the maximizer's move on b. Candidates that could tie the
// best score so far are searched with a window that keeps their value exact,
// so the choice matches an unpruned minimax with last-max tie-breaking.
func (e *Engine) BestMove(ctx context.Context, b Board) (Result, error) {
	moves := LegalMoves(b)
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMove
	}

	depth := e.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}
	e.nodes.Store(1)
	start := time.Now()

	var (
		res Result
		err error
	)
	if e.Parallel && len(moves) > 1 {
		res, err = e.searchRootParallel(ctx, b, moves, depth)
	} else {
		res, err = e.searchRoot(ctx, b, moves, depth)
	}
	if err != nil {
		return Result{}, err
	}
	res.Depth = depth
	res.Nodes = e.nodes.Load()
	res.Elapsed = time.Since(start)

	log.Debug().
		Int("depth", depth).
		Int("candidates", len(moves)).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Int("score", res.Score).
		Stringer("move", res.Move).
		Bool("parallel", e.Parallel).
		Msg("search-done")
	return res, nil
}

func (e *Engine) searchRoot(ctx context.Context, b Board, moves []Move, depth int) (Result, error) {
	best := Result{Score: negInf}
	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		alpha := negInf
		if i > 0 {
			alpha = best.Score - 1
		}
		eval, _, _ := e.Search(ApplyMove(b, m.Row, m.Col, e.Maximizer), depth-1, alpha, posInf, false)
		if eval >= best.Score {
			best.Score = eval
			best.Move = m
		}
	}
	return best, nil
}

func (e *Engine) searchRootParallel(ctx context.Context, b Board, moves []Move, depth int) (Result, error) {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	scores := make([]int, len(moves))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range moves {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i], _, _ = e.Search(ApplyMove(b, m.Row, m.Col, e.Maximizer), depth-1, negInf, posInf, false)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := Result{Score: negInf}
	for i, s := range scores {
		if s >= best.Score {
			best.Score = s
			best.Move = moves[i]
		}
	}
	return best, nil
}

// RequestAIMove searches depth plies for side on b. It reports false when no
// legal move exists.
func RequestAIMove(b Board, depth int, side Side) (Move, bool) {
	res, err := NewEngine(depth, side).BestMove(context.Background(), b)
	if err != nil {
		return Move{}, false
	}
	return res.Move, true
}
