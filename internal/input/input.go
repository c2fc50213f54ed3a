// Package input reads one lambda expression at a time from the REPL's
// source, whether that's a piped script or an interactive terminal.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DirectExprReader reads lines from any io.Reader directly. It can be used
// generically with any io.Reader but does not sanitize the input of control
// and escape sequences.
//
// DirectExprReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectExprReader struct {
	r *bufio.Reader
}

// InteractiveExprReader reads lines from stdin using a Go implementation of
// the GNU Readline library. This keeps input clear of typing and editing
// escape sequences and enables command history. It should in general only
// be used when directly connected to a TTY.
//
// InteractiveExprReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveExprReader struct {
	rl     *readline.Instance
	prompt string
}

// NewDirectReader creates a new DirectExprReader and initializes a buffered
// reader on the provided reader. The returned reader must have Close()
// called on it before disposal.
func NewDirectReader(r io.Reader) *DirectExprReader {
	return &DirectExprReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveExprReader and initializes
// readline with the given prompt. The returned reader must have Close()
// called on it before disposal to properly teardown readline resources.
func NewInteractiveReader(prompt string) (*InteractiveExprReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveExprReader{
		rl:     rl,
		prompt: prompt,
	}, nil
}

// Close cleans up resources associated with the DirectExprReader.
func (der *DirectExprReader) Close() error {
	return nil
}

// Close cleans up readline resources associated with the InteractiveExprReader.
func (ier *InteractiveExprReader) Close() error {
	return ier.rl.Close()
}

// ReadExpr reads the next line of source. The returned string will only be
// empty if there is an error reading input; otherwise this function blocks
// until a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (der *DirectExprReader) ReadExpr() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = der.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && err == io.EOF {
			return "", io.EOF
		}
	}

	return line, nil
}

// ReadExpr reads the next line of source from stdin. The returned string
// will only be empty if there is an error, otherwise this function blocks
// until a line consisting of more than empty or whitespace-only input is
// read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (ier *InteractiveExprReader) ReadExpr() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ier.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// SetPrompt updates the prompt to the given text. The REPL uses this to
// switch between the normal ">> " prompt and the "!!" banner shown after an
// error.
func (ier *InteractiveExprReader) SetPrompt(p string) {
	ier.prompt = p
	ier.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (ier *InteractiveExprReader) GetPrompt() string {
	return ier.prompt
}
