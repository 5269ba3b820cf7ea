package grid

// GetGridCoords maps a linear cell index to (column, row) on a grid cols wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Rows reports how many grid rows n cells occupy. An empty run still takes one row.
func Rows(n, cols int) int {
	if n <= 0 {
		return 1
	}
	return (n + cols - 1) / cols
}
