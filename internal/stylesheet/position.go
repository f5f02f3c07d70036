package stylesheet

import "sort"

func computeLineStarts(s string) []int {
	starts := []int{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Position converts a byte offset of the original input into a 1-based
// line and column. Columns count bytes, like the Go toolchain does.
func (r *Root) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(r.Input) {
		offset = len(r.Input)
	}
	i := sort.Search(len(r.lineStarts), func(i int) bool { return r.lineStarts[i] > offset }) - 1
	return i + 1, offset - r.lineStarts[i] + 1
}

// Line returns the text of a 1-based line without its line terminator
func (r *Root) Line(line int) string {
	if line < 1 || line > len(r.lineStarts) {
		return ""
	}
	start := r.lineStarts[line-1]
	end := len(r.Input)
	if line < len(r.lineStarts) {
		end = r.lineStarts[line] - 1
	}
	if end > start && r.Input[end-1] == '\r' {
		end--
	}
	return r.Input[start:end]
}
