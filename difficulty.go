package puzzle

import "math/rand"

// Level selects a random-board generation strategy.
type Level int

const (
	LevelEasy Level = iota
	LevelModerate
	LevelHard
	LevelRandom
)

func manhattanDistance(tiles [boardLen]byte) int {
	total := 0
	for p, v := range tiles {
		if v == 0 {
			continue
		}
		r, c := p/boardSize, p%boardSize
		tr, tc := int(v-1)/boardSize, int(v-1)%boardSize
		total += abs(tr-r) + abs(tc-c)
	}
	return total
}

var goalTiles = [boardLen]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0}

// GenerateBoard returns a random Board at the requested difficulty,
// using rng for every random choice (pass a seeded rand.Rand for
// reproducible generation in tests).
func GenerateBoard(level Level, rng *rand.Rand) *Board {
	switch level {
	case LevelModerate:
		return generateModerate(rng)
	case LevelEasy:
		return generateWalk(rng, goalTiles, 1, 99, 25, false)
	case LevelHard:
		seed := hardSeeds[rng.Intn(len(hardSeeds))]
		return generateWalk(rng, seed, 1, 99, 40, true)
	default:
		return generateRandom(rng)
	}
}

// generateRandom performs a Knuth shuffle and, if the result is
// unsolvable, forces solvability with a single fixed swap
// (tiles[4],tiles[5] when the blank starts in row 0, otherwise
// tiles[0],tiles[1]) rather than reshuffling.
func generateRandom(rng *rand.Rand) *Board {
	tiles := goalTiles
	rng.Shuffle(boardLen, func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })

	b, err := NewBoard(tiles[:])
	if err != nil {
		panic(err) // tiles is always a permutation of 0..15 by construction
	}
	if b.IsSolvable() {
		return b
	}

	zeroRow := 0
	for p, v := range tiles {
		if v == 0 {
			zeroRow = p / boardSize
			break
		}
	}
	if zeroRow == 0 {
		tiles[4], tiles[5] = tiles[5], tiles[4]
	} else {
		tiles[0], tiles[1] = tiles[1], tiles[0]
	}
	b, err = NewBoard(tiles[:])
	if err != nil {
		panic(err)
	}
	return b
}

// generateModerate retries generateRandom until its Manhattan distance
// falls in [20,45].
func generateModerate(rng *rand.Rand) *Board {
	for {
		b := generateRandom(rng)
		md := manhattanDistance(b.tiles)
		if md >= 20 && md <= 45 {
			return b
		}
	}
}

// generateWalk applies uniform-random legal moves starting from `from`,
// a random number of times in [minSteps,maxSteps], retrying until the
// result is not the goal and its Manhattan distance satisfies the given
// comparison against threshold (< for Easy, > for Hard).
func generateWalk(rng *rand.Rand, from [boardLen]byte, minSteps, maxSteps, threshold int, wantAbove bool) *Board {
	for {
		b, err := NewBoard(from[:])
		if err != nil {
			panic(err)
		}
		steps := minSteps + rng.Intn(maxSteps-minSteps+1)
		for i := 0; i < steps; i++ {
			moves := b.Neighbors()
			b = moves[rng.Intn(len(moves))]
		}
		if b.IsGoal() {
			continue
		}
		md := manhattanDistance(b.tiles)
		if wantAbove && md > threshold {
			return b
		}
		if !wantAbove && md < threshold {
			return b
		}
	}
}
