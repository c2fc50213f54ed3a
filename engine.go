// Package lambdaq contains a CLI-driven REPL engine that reads one lambda
// expression at a time and prints its reduction trace, until the user
// quits.
package lambdaq

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/rosed"
	"github.com/google/uuid"

	"github.com/dekarrin/lambdaq/internal/config"
	"github.com/dekarrin/lambdaq/internal/debruijn"
	"github.com/dekarrin/lambdaq/internal/input"
	"github.com/dekarrin/lambdaq/internal/printer"
	"github.com/dekarrin/lambdaq/internal/reduce"
	"github.com/dekarrin/lambdaq/internal/replay"
	"github.com/dekarrin/lambdaq/internal/syntax"
	"github.com/dekarrin/lambdaq/internal/term"
)

// exprReader is the subset of internal/input's two reader types the Engine
// needs; it lets the Engine treat piped and interactive input identically.
type exprReader interface {
	ReadExpr() (string, error)
	Close() error
}

// Engine runs the read-eval-print loop over a lambda-calculus source and
// output stream.
type Engine struct {
	cfg     config.Config
	in      exprReader
	out     *bufio.Writer
	running bool

	sessionID uuid.UUID
	savePath  string
	lastRun   replay.Session
}

const promptNormal = ">> "
const promptError = "!! "
const consoleOutputWidth = 80

// New creates a new Engine ready to operate on the given input and output
// streams. If inputStream is nil, stdin is used; if outputStream is nil,
// stdout is used. savePath, if non-empty, names a file that the full
// session is written to (via internal/replay) when Close is called.
//
// Readline-backed interactive input is used only when directly connected to
// a terminal on both streams and forceDirect is false; otherwise input is
// read line-by-line with no history or editing.
func New(inputStream io.Reader, outputStream io.Writer, cfg config.Config, forceDirect bool, savePath string) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	eng := &Engine{
		cfg:       cfg,
		out:       bufio.NewWriter(outputStream),
		sessionID: id,
		savePath:  savePath,
	}

	useReadline := !forceDirect && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		eng.in, err = input.NewInteractiveReader(promptNormal)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources, and writes the replay session if a save path
// was given to New.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	if eng.savePath != "" {
		if err := replay.Save(eng.savePath, eng.lastRun); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	return eng.in.Close()
}

// RunUntilQuit reads expressions until end of input, running each one
// through parse -> resolve -> trace -> format and printing the result. Any
// strings in startCommands are run first, in order, before reading from the
// input stream.
func (eng *Engine) RunUntilQuit(startCommands []string) error {
	eng.running = true
	defer func() { eng.running = false }()

	for _, line := range startCommands {
		eng.evalLine(line)
	}

	for {
		line, err := eng.in.ReadExpr()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read expression: %w", err)
		}

		eng.evalLine(line)
	}

	return eng.flush()
}

// evalLine runs one line through the core pipeline (parse, resolve, trace,
// format) and writes its output, or an error banner on failure, to the
// Engine's output stream. It also records the run as the Engine's current
// replay.Session, which Close persists if a save path was configured.
func (eng *Engine) evalLine(line string) {
	if ir, ok := eng.in.(*input.InteractiveExprReader); ok {
		ir.SetPrompt(promptNormal)
	}

	eng.lastRun = replay.Session{
		ID:       eng.sessionID,
		Source:   line,
		Mode:     modeName(eng.cfg.PrintMode),
		Strategy: strategyName(eng.cfg.Strategy),
	}

	tm, err := syntax.ParseComplete(line)
	if err != nil {
		eng.reportError(line, err)
		return
	}

	if eng.cfg.Typed && !term.RequireFullyTyped(tm) {
		eng.reportError(line, fmt.Errorf("every abstraction must carry a type annotation in typed mode"))
		return
	}

	debruijn.Resolve(&tm)

	initial := printer.Format(tm, eng.cfg.PrintMode)
	snapshots := reduce.Trace(&tm, eng.cfg.Strategy, func(t term.Term) string {
		return printer.Format(t, eng.cfg.PrintMode)
	})

	eng.write("%s%s\n", promptNormal, line)
	if len(snapshots) == 0 {
		eng.write("stuck!\n")
		eng.writeWrapped("0. %s", initial)
	} else {
		eng.writeWrapped("0. %s", initial)
		for i, s := range snapshots {
			eng.writeWrapped("%d. %s", i+1, s)
		}
	}

	eng.lastRun.Steps = snapshots
	eng.lastRun.Final = initial
	if len(snapshots) > 0 {
		eng.lastRun.Final = snapshots[len(snapshots)-1]
	}
}

func (eng *Engine) reportError(line string, err error) {
	se := syntax.NewSyntaxError(line, err)
	if ir, ok := eng.in.(*input.InteractiveExprReader); ok {
		ir.SetPrompt(promptError)
	}
	eng.write("%s\n", promptError)
	// the source line and its caret are position-sensitive and must not be
	// reflowed, so only the trailing message itself is wrapped.
	if cursor := se.SourceLineWithCursor(); cursor != "" {
		eng.write("%s\n", cursor)
	}
	eng.writeWrapped("%s", se.Error())
}

func (eng *Engine) write(format string, a ...interface{}) {
	fmt.Fprintf(eng.out, format, a...)
	eng.out.Flush()
}

// writeWrapped formats a trace line and word-wraps it to consoleOutputWidth
// before writing, the way the teacher's engine.go wraps console messages
// before printing them.
func (eng *Engine) writeWrapped(format string, a ...interface{}) {
	consoleMessage := fmt.Sprintf(format, a...)
	consoleMessage = rosed.Edit(consoleMessage).Wrap(consoleOutputWidth).String()
	eng.write("%s\n", consoleMessage)
}

func (eng *Engine) flush() error {
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func modeName(m printer.Mode) string {
	switch m {
	case printer.Indexed:
		return "indexed"
	case printer.NamelessLocals:
		return "nameless"
	default:
		return "named"
	}
}

func strategyName(s reduce.Strategy) string {
	if s == reduce.Normalize {
		return "normalize"
	}
	return "byvalue"
}
