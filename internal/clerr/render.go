package clerr

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Render formats err with source context, in the gutter-and-caret style
// of the teacher compiler's CompilerError.Format: a header naming the file
// and position, the offending source line under a right-aligned line-number
// gutter, and a caret pointing at the column. When color is true the caret
// and message are wrapped in ANSI bold-red / bold escapes.
func Render(err error, source, file string, color bool) string {
	pe, ok := err.(Positioned)
	if !ok {
		return err.Error()
	}

	var sb strings.Builder
	pos := pe.Position()
	kind := titleCaser.String(Kind(err))

	if pos.Zero() {
		sb.WriteString(fmt.Sprintf("%s error: %s\n", kind, err.Error()))
		return sb.String()
	}

	if file != "" {
		sb.WriteString(fmt.Sprintf("%s error in %s:%s\n", kind, file, pos))
	} else {
		sb.WriteString(fmt.Sprintf("%s error at %s\n", kind, pos))
	}

	if line := sourceLine(source, pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(gutter)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(err.Error())
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
