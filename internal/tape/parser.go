package tape

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrUnknownCommand is returned for lines that name no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrArgs is returned when a command has the wrong number of arguments.
	ErrArgs = errors.New("wrong number of arguments")
)

// Parse reads a script. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields, err := tokenize(text)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		if len(fields) == 0 {
			continue
		}
		t, ok := lookupType(fields[0])
		if !ok {
			return nil, &LineError{Line: line, Err: fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])}
		}
		args := fields[1:]
		if len(args) != arity[t] {
			return nil, &LineError{Line: line, Err: fmt.Errorf("%s: %w: got %d, want %d", t, ErrArgs, len(args), arity[t])}
		}
		cmds = append(cmds, Command{Type: t, Args: args, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]Command, error) {
	return Parse(strings.NewReader(s))
}

// tokenize splits on whitespace, honouring double-quoted strings and
// trailing # comments.
func tokenize(s string) ([]string, error) {
	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
		hasTok  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == '"':
			inQuote = !inQuote
			hasTok = true
		case inQuote:
			cur.WriteByte(c)
		case c == '#':
			i = len(s)
		case c == ' ' || c == '\t':
			if hasTok {
				fields = append(fields, cur.String())
				cur.Reset()
				hasTok = false
			}
		default:
			cur.WriteByte(c)
			hasTok = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if hasTok {
		fields = append(fields, cur.String())
	}
	return fields, nil
}
