package puzzle

// hardSeeds are known-difficult starting boards used by GenerateBoard's
// Hard level as a starting point for further random shuffling, rather
// than generating from the goal directly: a random walk from one of
// these seeds is far more likely to still be hard after a modest number
// of extra random moves than a random walk from the goal is.
var hardSeeds = [][16]byte{
	{0, 11, 9, 13, 12, 15, 10, 14, 3, 7, 6, 2, 4, 8, 5, 1},
	{0, 15, 9, 13, 11, 12, 10, 14, 3, 7, 6, 2, 4, 8, 5, 1},
	{0, 12, 9, 13, 15, 11, 10, 14, 3, 7, 6, 2, 4, 8, 5, 1},
	{1, 10, 14, 13, 7, 6, 5, 9, 8, 2, 11, 15, 4, 3, 12, 0},
	{1, 10, 9, 13, 7, 6, 5, 14, 3, 2, 11, 15, 4, 8, 12, 0},
	{1, 5, 14, 13, 2, 6, 10, 9, 8, 7, 11, 15, 4, 3, 12, 0},
	{6, 5, 13, 9, 2, 1, 10, 14, 4, 7, 11, 12, 3, 8, 15, 0},
	{6, 5, 9, 14, 2, 1, 10, 13, 3, 7, 11, 12, 8, 4, 15, 0},
}
