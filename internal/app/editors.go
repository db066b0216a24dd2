package app

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/theme"
)

// IndentUnit is what tab inserts. The editors expand tabs to four spaces.
// Clipboard paste is left to the terminal's bracketed paste.
const IndentUnit = "    "

// editorMaxLines caps the explorer editor and sizes its line numbers.
const editorMaxLines = 9999

func textareaStyles() textarea.Styles {
	s := textarea.DefaultDarkStyles()
	for _, st := range []*textarea.StyleState{&s.Focused, &s.Blurred} {
		st.Text = fg(theme.Fg())
		st.CursorLine = fg(theme.Fg())
		st.Prompt = fg(theme.Prompt())
		st.LineNumber = fg(theme.BorderUnfocused())
		st.CursorLineNumber = fg(theme.TitleFg())
		st.EndOfBuffer = fg(theme.Bg())
	}
	s.Cursor.Color = theme.Fg()
	s.Cursor.Shape = tea.CursorBlock
	s.Cursor.Blink = false
	return s
}

// newReplInput returns the console input: ">>> " on the first row and
// "... " on continuation rows.
func newReplInput() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.EndOfBufferCharacter = ' '
	ta.KeyMap.Paste.SetEnabled(false)
	ta.SetPromptFunc(4, func(info textarea.PromptInfo) string {
		if info.LineNumber == 0 {
			return ">>> "
		}
		return "... "
	})
	ta.SetStyles(textareaStyles())
	ta.SetHeight(1)
	ta.Focus()
	return ta
}

// newFileEditor returns the explorer's code editor.
func newFileEditor() textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = editorMaxLines
	ta.MaxWidth = 0
	ta.EndOfBufferCharacter = ' '
	ta.KeyMap.Paste.SetEnabled(false)
	ta.SetStyles(textareaStyles())
	ta.Focus()
	return ta
}

// newPromptInput returns the single-line input of a prompt dialog.
func newPromptInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.KeyMap.Paste.SetEnabled(false)
	s := textinput.DefaultDarkStyles()
	for _, st := range []*textinput.StyleState{&s.Focused, &s.Blurred} {
		st.Text = fg(theme.Fg())
		st.Prompt = fg(theme.Prompt())
	}
	s.Cursor.Color = theme.Fg()
	s.Cursor.Blink = false
	ti.SetStyles(s)
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

// CursorColumn returns the cursor's rune offset in its logical line.
func CursorColumn(ta *textarea.Model) int {
	li := ta.LineInfo()
	return li.StartColumn + li.ColumnOffset
}

// CurrentLine returns the logical line holding the cursor.
func CurrentLine(ta *textarea.Model) string {
	lines := strings.Split(ta.Value(), "\n")
	return lines[min(ta.Line(), len(lines)-1)]
}

// AtEnd reports whether the cursor sits after the last character.
func AtEnd(ta *textarea.Model) bool {
	return ta.Line() == ta.LineCount()-1 && CursorColumn(ta) == len([]rune(CurrentLine(ta)))
}

// OnFirstRow reports whether the cursor is on the first screen row.
func OnFirstRow(ta *textarea.Model) bool {
	return ta.Line() == 0 && ta.LineInfo().RowOffset == 0
}

// OnLastRow reports whether the cursor is on the last screen row.
func OnLastRow(ta *textarea.Model) bool {
	li := ta.LineInfo()
	return ta.Line() == ta.LineCount()-1 && li.RowOffset >= li.Height-1
}

// editorView renders ta at w×h, without a cursor unless focused.
func editorView(ta *textarea.Model, w, h int, focused bool) []string {
	w = max(w, 0)
	ta.SetWidth(w)
	ta.SetHeight(h)
	view := *ta
	if !focused {
		view.Blur()
	}
	lines := strings.Split(strings.TrimRight(view.View(), "\n"), "\n")
	out := make([]string, h)
	for i := range out {
		if i < len(lines) {
			out[i] = fitLine(lines[i], w)
		} else {
			out[i] = strings.Repeat(" ", w)
		}
	}
	return out
}
