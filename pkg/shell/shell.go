package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/optable/courseplanner/internal/util"
	"github.com/optable/courseplanner/pkg/catalog"
	"github.com/optable/courseplanner/pkg/course"
	"github.com/optable/courseplanner/pkg/hashtable"
	"github.com/optable/courseplanner/pkg/log"
)

const (
	Welcome  = "Welcome to the course planner.\n"
	Menu     = "1. Load Data Structure.\n2. Print Course List.\n3. Print Course.\n9. Exit\n"
	Loaded   = "Data loaded successfully."
	NotFound = "Course not found."
	Farewell = "Thank you for using the course planner!"
)

// Table is the part of the course table the shell drives
type Table interface {
	catalog.Inserter
	Search(number string) (course.Course, bool)
	Entries() []hashtable.Entry
}

// Request is one command read from the menu. Input is the text as
// typed, Argument the answer to the command's prompt.
type Request struct {
	Command  Command
	Input    string
	Argument string
}

// Dispatch runs req against t. Regular output goes to out and
// problems to errOut; no error ever stops the shell. It returns false
// once the shell should exit.
func Dispatch(ctx context.Context, t Table, req Request, out, errOut io.Writer) bool {
	logger := log.GetLoggerFromContextWithName(ctx, "shell")
	logger.V(log.Trace).Info("dispatching", "command", req.Command.String(), "argument", req.Argument)

	switch req.Command {
	case Load:
		n, err := catalog.LoadFile(ctx, req.Argument, t)
		if err != nil {
			logger.V(log.Debug).Info("load failed", "file", req.Argument, "error", err.Error())
			fmt.Fprintf(errOut, "Unable to load %s: %v\n", req.Argument, err)
			return true
		}
		logger.V(log.Debug).Info("loaded catalog", "file", req.Argument, "courses", n)
		fmt.Fprintln(out, Loaded)

	case PrintAll:
		for _, e := range t.Entries() {
			fmt.Fprintf(out, "%s, %s\n", e.Number, e.Title)
		}

	case PrintOne:
		c, ok := t.Search(req.Argument)
		if !ok {
			fmt.Fprintln(errOut, NotFound)
			return true
		}
		fmt.Fprintf(out, "%s\nPrerequisites: %s\n", c.Summary(), c.PrerequisiteList())

	case Exit:
		fmt.Fprintln(out, Farewell)
		return false

	default:
		fmt.Fprintf(errOut, "%s is not a valid option.\n", req.Input)
	}

	return true
}

// Shell is the interactive menu loop over a course table
type Shell struct {
	table  Table
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// New returns a Shell reading commands from in
func New(t Table, in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		table:  t,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// Run shows the menu and dispatches commands until the user exits or
// the input runs out. Running out of input is not an error.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprint(s.out, Welcome)

	for {
		fmt.Fprint(s.out, Menu)
		input, err := s.readLine()
		if input == "" {
			if err != nil {
				return ignoreEOF(err)
			}
			continue
		}

		req := Request{Command: ParseCommand(input), Input: input}
		if prompt := req.Command.Prompt(); prompt != "" {
			if err != nil {
				return ignoreEOF(err)
			}
			fmt.Fprint(s.out, prompt)
			req.Argument, err = s.readLine()
			if req.Argument == "" && err != nil {
				return ignoreEOF(err)
			}
		}

		if !Dispatch(ctx, s.table, req, s.out, s.errOut) {
			return nil
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

// readLine returns the next line of input with surrounding blanks removed
func (s *Shell) readLine() (string, error) {
	line, err := util.SafeReadLine(s.in)
	return strings.TrimSpace(line), err
}

func ignoreEOF(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}
