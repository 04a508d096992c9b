package git

import (
	"bytes"
	"strings"
)

// classifyWindow bounds how much of a blob the classifier inspects
const classifyWindow = 8 * 1024

// IsBinary reports whether content looks binary: any NUL byte within the
// first 8 KiB. Binary blobs contribute zero to every line count.
func IsBinary(content []byte) bool {
	window := content
	if len(window) > classifyWindow {
		window = window[:classifyWindow]
	}
	return bytes.IndexByte(window, 0) >= 0
}

// CountLines returns the number of newline-delimited lines in content.
// Empty content has zero lines; a missing trailing newline still counts
// the final line.
func CountLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// SplitLines splits content into its lines, consistent with CountLines:
// empty content yields no lines and a trailing newline adds none.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}
