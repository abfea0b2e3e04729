// Command go_fifteen is a minimal CLI driver for the 15-puzzle solver
// core: it generates or accepts a board, solves it, and prints the
// moves, with no UI beyond stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	puzzle "github.com/Surge200/15Puzzle-OptimalSolver"
)

func main() {
	var (
		boardFlag   = flag.String("board", "", "comma-separated 16 tile values, blank=0 (default: generate one)")
		levelFlag   = flag.String("level", "moderate", "easy|moderate|hard|random, used when -board is omitted")
		timeoutFlag = flag.Duration("timeout", 0, "search timeout, 0 means no limit")
		kindFlag    = flag.String("heuristic", "wdmd", "wd|md|mdlc|wdmd|pdb663|pdb555|pdb78")
	)
	flag.Parse()

	b, err := resolveBoard(*boardFlag, *levelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "go_fifteen:", err)
		os.Exit(1)
	}

	solver, err := puzzle.NewSolver(puzzle.SolverOptions{Kind: parseKind(*kindFlag)})
	if err != nil {
		fmt.Fprintln(os.Stderr, "go_fifteen:", err)
		os.Exit(1)
	}
	if *timeoutFlag > 0 {
		solver.SetTimeout(*timeoutFlag)
	}

	fmt.Print(b)
	fmt.Println("heuristic:", solver.Heuristic(b))

	ctx := context.Background()
	result, err := solver.FindOptimalPath(ctx, b)
	if err != nil {
		fmt.Fprintln(os.Stderr, "go_fifteen:", err)
		os.Exit(1)
	}
	if result.Timeout {
		fmt.Println("search timed out")
		return
	}
	if result.Steps == 0 && !b.IsGoal() {
		fmt.Println("board is not solvable")
		return
	}
	fmt.Printf("solved in %d moves, %d nodes searched\n", result.Steps, result.NodesSearched)
	fmt.Println(formatMoves(result.Moves))
}

func resolveBoard(boardFlag, levelFlag string) (*puzzle.Board, error) {
	if boardFlag != "" {
		parts := strings.Split(boardFlag, ",")
		tiles := make([]byte, len(parts))
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("parsing -board: %w", err)
			}
			tiles[i] = byte(v)
		}
		return puzzle.NewBoard(tiles)
	}

	level := puzzle.LevelModerate
	switch levelFlag {
	case "easy":
		level = puzzle.LevelEasy
	case "hard":
		level = puzzle.LevelHard
	case "random":
		level = puzzle.LevelRandom
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return puzzle.GenerateBoard(level, rng), nil
}

func parseKind(s string) puzzle.Kind {
	switch s {
	case "wd":
		return puzzle.KindWD
	case "md":
		return puzzle.KindMD
	case "mdlc":
		return puzzle.KindMDLC
	case "pdb663":
		return puzzle.KindPDB663
	case "pdb555":
		return puzzle.KindPDB555
	case "pdb78":
		return puzzle.KindPDB78
	default:
		return puzzle.KindWDMD
	}
}

func formatMoves(moves []puzzle.Direction) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
