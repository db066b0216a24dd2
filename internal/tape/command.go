// Package tape reads and plays layout scripts: one command per line that
// docks, moves, resizes and checks the two panels. Scripts reproduce a layout
// session headlessly or drive the running desktop.
package tape

import (
	"fmt"
	"strings"
)

// CommandType identifies a script command.
type CommandType string

const (
	CommandTypeViewport CommandType = "Viewport"
	CommandTypeDock     CommandType = "Dock"
	CommandTypeFloat    CommandType = "Float"
	CommandTypeMinimize CommandType = "Minimize"
	CommandTypeMaximize CommandType = "Maximize"
	CommandTypeShow     CommandType = "Show"
	CommandTypeHide     CommandType = "Hide"
	CommandTypeMini     CommandType = "Mini"
	CommandTypeMove     CommandType = "Move"
	CommandTypeResize   CommandType = "Resize"
	CommandTypeSplit    CommandType = "Split"
	CommandTypeExpect   CommandType = "Expect"
	CommandTypePrint    CommandType = "Print"
	CommandTypeSleep    CommandType = "Sleep"
)

// arity is the number of arguments each command takes.
var arity = map[CommandType]int{
	CommandTypeViewport: 2,
	CommandTypeDock:     2,
	CommandTypeFloat:    1,
	CommandTypeMinimize: 1,
	CommandTypeMaximize: 1,
	CommandTypeShow:     1,
	CommandTypeHide:     1,
	CommandTypeMini:     0,
	CommandTypeMove:     3,
	CommandTypeResize:   4,
	CommandTypeSplit:    3,
	CommandTypeExpect:   5,
	CommandTypePrint:    0,
	CommandTypeSleep:    1,
}

// Command is one parsed script line.
type Command struct {
	Type CommandType
	Args []string
	Line int
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return string(c.Type) + " " + strings.Join(c.Args, " ")
}

// lookupType matches a command name case-insensitively.
func lookupType(name string) (CommandType, bool) {
	for t := range arity {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// LineError ties an error to a script line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }
