package ledger

import "strconv"

// ColumnLabel converts a 1-based column number to its spreadsheet letter
// label using bijective base-26: A=1 .. Z=26, AA=27. There is no zero digit,
// so this is not a plain base conversion.
func ColumnLabel(n int) string {
	label := ""
	for n > 0 {
		n--
		label = string(rune('A'+n%26)) + label
		n /= 26
	}
	return label
}

// cellRef builds an A1-style reference from 0-based column and row indices.
func cellRef(col, row int) string {
	return ColumnLabel(col+1) + strconv.Itoa(row+1)
}
