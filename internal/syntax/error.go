package syntax

import (
	"fmt"
	"strings"

	c "github.com/dekarrin/lambdaq/internal/combinator"
)

// SyntaxError wraps a parse failure with the offending source line and a
// 1-indexed line/column so a REPL or HTTP handler can show the user where
// the problem is instead of just a byte offset.
type SyntaxError struct {
	source     string
	sourceLine string
	line       int
	col        int
	message    string
}

// NewSyntaxError builds a SyntaxError from the source text that was parsed
// and the error Parse or ParseComplete returned. If err is not a
// combinator.ParseError (for example, a trailing-input error from
// ParseComplete, which carries no byte range), the returned SyntaxError has
// no line/column information.
func NewSyntaxError(source string, err error) SyntaxError {
	pe, ok := err.(c.ParseError)
	if !ok {
		return SyntaxError{source: source, message: err.Error()}
	}

	line, col, lineText := locate(source, pe.Start)
	return SyntaxError{
		source:     source,
		sourceLine: lineText,
		line:       line,
		col:        col,
		message:    pe.Message,
	}
}

// locate turns a byte offset into source into a 1-indexed line/column and
// the text of that line.
func locate(source string, offset int) (line, col int, lineText string) {
	if offset > len(source) {
		offset = len(source)
	}

	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1

	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd < 0 {
		lineText = source[lineStart:]
	} else {
		lineText = source[lineStart : lineStart+lineEnd]
	}

	return line, col, lineText
}

func (se SyntaxError) Error() string {
	if se.line == 0 {
		return fmt.Sprintf("syntax error: %s", se.message)
	}
	return fmt.Sprintf("syntax error: around line %d, char %d: %s", se.line, se.col, se.message)
}

// Line returns the 1-indexed line the error occurred on, or 0 if unknown.
func (se SyntaxError) Line() int {
	return se.line
}

// Position returns the 1-indexed column the error occurred on, or 0 if
// unknown.
func (se SyntaxError) Position() int {
	return se.col
}

// FullMessage shows the complete error message along with the offending
// line and a cursor pointing at the problem column.
func (se SyntaxError) FullMessage() string {
	msg := se.Error()
	if se.line != 0 {
		msg = se.SourceLineWithCursor() + "\n" + msg
	}
	return msg
}

// SourceLineWithCursor returns the offending source line and, on the line
// below it, a cursor pointing at the column the error was detected at.
// Returns an empty string if no source line is available.
func (se SyntaxError) SourceLineWithCursor() string {
	if se.sourceLine == "" {
		return ""
	}

	cursor := strings.Repeat(" ", se.col-1) + "^"
	return se.sourceLine + "\n" + cursor
}
