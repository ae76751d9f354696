package monotone

// expectedMonotonic lists the 18 monotonic functions over the canonical 3x3
// space, as bit rows in config id order "1".."9".
var expectedMonotonic = [][]int{
	{0, 0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 1, 0, 0, 1, 0, 0, 0},
	{0, 1, 1, 0, 0, 1, 0, 0, 0},
	{0, 0, 1, 0, 0, 1, 0, 0, 1},
	{0, 1, 1, 0, 0, 1, 0, 0, 1},
	{0, 1, 1, 0, 1, 1, 0, 0, 0},
	{0, 1, 1, 0, 1, 1, 0, 0, 1},
	{0, 1, 1, 0, 1, 1, 0, 1, 1},
	{1, 1, 1, 0, 0, 0, 0, 0, 0},
	{1, 1, 1, 0, 0, 1, 0, 0, 0},
	{1, 1, 1, 0, 1, 1, 0, 0, 0},
	{1, 1, 1, 1, 1, 1, 0, 0, 0},
	{1, 1, 1, 0, 0, 1, 0, 0, 1},
	{1, 1, 1, 0, 1, 1, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 0, 0, 1},
	{1, 1, 1, 0, 1, 1, 0, 1, 1},
	{1, 1, 1, 1, 1, 1, 0, 1, 1},
}
