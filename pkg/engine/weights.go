package engine

// Weights is the positional value of each cell, indexed [y][x]. Corners and
// edges are worth holding; the cells diagonally next to a corner give the
// corner away and are heavily negative.
var Weights = [Size][Size]int{
	{100, -20, 10, 10, -20, 100},
	{-20, -50, -2, -2, -50, -20},
	{10, -2, 0, 0, -2, 10},
	{10, -2, 0, 0, -2, 10},
	{-20, -50, -2, -2, -50, -20},
	{100, -20, 10, 10, -20, 100},
}
