// Package clerr implements the closed, structured error-kind set of the
// language: one error type per pipeline failure mode, each carrying the
// payload the pass that raised it had in hand, rendered with the same
// gutter-and-caret source framing the teacher's compiler errors use.
package clerr

import "fmt"

// Position is a 1-indexed line/column location in a source file. Columns
// count runes, not bytes, so multi-byte UTF-8 source reports stable
// positions regardless of character width.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Zero reports whether the position was never set (e.g. a synthesized node).
func (p Position) Zero() bool {
	return p.Line == 0 && p.Column == 0
}
