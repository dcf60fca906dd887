package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"giftwrap/internal/game"
)

type Options struct {
	VsBot    bool
	Blocked  bool
	Depth    int
	Parallel bool
	Workers  int
}

// Play runs one game on the terminal. X is always typed in; O is typed in
// too unless VsBot is set, in which case the engine plays it.
func Play(ctx context.Context, r io.Reader, w io.Writer, opts Options) game.Outcome {
	s := game.NewSession(opts.Blocked)

	done := make(chan struct{})
	defer close(done)
	lines := readLines(r, done)

	var bot *game.Engine
	if opts.VsBot {
		bot = game.NewEngine(opts.Depth, game.SideB)
		bot.Parallel = opts.Parallel
		bot.Workers = opts.Workers
	}

	fmt.Fprintln(w, "=== Giftwrap ===")
	fmt.Fprintln(w, "Enter moves as: row col (1-8). q quits.")
	fmt.Fprintln(w)

	for !s.Terminal() {
		printState(w, s)

		if bot != nil && s.Turn() == bot.Maximizer {
			fmt.Fprintln(w, "Santa is thinking...")
			res, err := s.RequestAIMove(ctx, bot)
			if err == nil {
				err = s.AttemptMove(res.Move.Row, res.Move.Col, bot.Maximizer)
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				fmt.Fprintln(w, "Interrupted.")
				return game.OutcomeNone
			}
			if err != nil {
				fmt.Fprintln(w, "Bot failed:", err)
				return game.OutcomeNone
			}
			fmt.Fprintf(w, "Santa plays %d %d\n\n", res.Move.Row+1, res.Move.Col+1)
			continue
		}

		fmt.Fprintf(w, "%s> ", s.Turn())
		var input string
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\nInterrupted.")
			return game.OutcomeNone
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(w)
				return game.OutcomeNone
			}
			input = line
		}
		input = strings.TrimSpace(strings.ToLower(input))
		if input == "q" {
			fmt.Fprintln(w, "Quit.")
			return game.OutcomeNone
		}

		row, col, ok := parseMove(input)
		if !ok {
			fmt.Fprintln(w, "Invalid input. Use: row col, e.g. 3 5")
			continue
		}
		if err := s.AttemptMove(row, col, s.Turn()); err != nil {
			fmt.Fprintln(w, "Illegal move:", err)
			continue
		}
		fmt.Fprintln(w)
	}

	printState(w, s)
	switch out := s.Outcome(); out {
	case game.OutcomeTie:
		fmt.Fprintln(w, "It's a tie!")
	default:
		fmt.Fprintf(w, "%s wins!\n", out)
	}
	return s.Outcome()
}

// readLines feeds r line by line so the play loop can wait on input and
// cancellation together. The channel closes at EOF or when done closes.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case out <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

func printState(w io.Writer, s *game.Session) {
	b := s.Board()
	fmt.Fprint(w, "  ")
	for c := 1; c <= game.BoardSize; c++ {
		fmt.Fprintf(w, " %d", c)
	}
	fmt.Fprintln(w)
	for r := 0; r < game.BoardSize; r++ {
		fmt.Fprintf(w, "%d ", r+1)
		for c := 0; c < game.BoardSize; c++ {
			fmt.Fprintf(w, " %s", b.At(r, c))
		}
		fmt.Fprintln(w)
	}
	a, o := s.Scores()
	fmt.Fprintf(w, "Score X: %d  O: %d\n", a, o)
}

// parseMove reads "row col" in 1-based coordinates.
func parseMove(input string) (int, int, bool) {
	parts := strings.Fields(strings.ReplaceAll(input, ",", " "))
	if len(parts) != 2 {
		return 0, 0, false
	}
	r, err1 := strconv.Atoi(parts[0])
	c, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return r - 1, c - 1, true
}
