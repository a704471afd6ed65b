package extractor

// Table maps a dotted key path to its first declaring line number within one
// declaration file. Re-declarations at the same path are ignored.
type Table map[string]int

// CategorySet holds the key paths declared as categories: intermediate nodes
// with children and no translatable value of their own.
type CategorySet map[string]struct{}

// Result holds extraction output for a single declaration file.
type Result struct {
	// Table records every extracted key path with its declaring line.
	Table Table
	// Categories records which of those paths are non-leaf nodes.
	Categories CategorySet
}

// match is one pattern hit in document order, before path reconstruction.
type match struct {
	// pos is the byte offset of the match in the stripped buffer.
	pos int
	// line is the 1-based line number derived from pos.
	line int
	// segment is the matched key segment name.
	segment string
	// category is true for an object opener, false for a leaf value.
	category bool
}

// stackEntry is one open ancestor scope on the indentation stack.
type stackEntry struct {
	segment string
	indent  int
}
