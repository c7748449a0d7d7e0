package grid

import "fmt"

// ColumnLetter converts a 1-based column index to the letter-style
// label used in human-facing output (A, B, ..., Z, AA, AB, ...)
func ColumnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}

// CellRef formats a 1-based coordinate as an A1-style reference
func CellRef(row, col int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row)
}
