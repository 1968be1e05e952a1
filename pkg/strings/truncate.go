// Package strings holds text helpers for tabular output.
package strings

import (
	"strings"
)

// DefaultCellMaxLen is the default maximum width of a table cell.
const DefaultCellMaxLen = 60

// MinTruncateLen is the smallest maxLen the truncate functions accept.
// Smaller values would not leave room for content plus "...".
const MinTruncateLen = 4

const ellipsis = "..."

// Truncate collapses s onto a single line and cuts it to maxLen runes,
// ending in "..." when anything was dropped.
//
// maxLen values below MinTruncateLen are raised to MinTruncateLen.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// TruncatePath shortens a slash or backslash separated path to maxLen runes
// by dropping leading directories, so the file name stays visible. A file
// name longer than maxLen is cut from the front.
func TruncatePath(path string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}

	keep := maxLen - len(ellipsis)
	tail := runes[len(runes)-keep:]
	// Start the kept part at a separator when there is one.
	for i, r := range tail {
		if r == '/' || r == '\\' {
			tail = tail[i:]
			break
		}
	}
	return ellipsis + string(tail)
}
