package app

import (
	"strings"

	"charm.land/bubbles/v2/textarea"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/explorer"
)

// LineKind styles one line of REPL output.
type LineKind int

const (
	LineInput LineKind = iota
	LineStdout
	LineStderr
	LineTraceback
	LineSystem
)

// OutputLine is one rendered line of the REPL transcript.
type OutputLine struct {
	Text string
	Kind LineKind
}

// ReplPanel is the console: an input editor over a scrolling transcript.
type ReplPanel struct {
	*dock.Frame

	Input   textarea.Model
	History []string
	// histIdx is len(History) while not browsing.
	histIdx int
	draft   string

	Output []OutputLine
	// Scroll counts lines scrolled up from the newest output.
	Scroll  int
	Running bool
}

// NewReplPanel returns an empty console.
func NewReplPanel() *ReplPanel {
	return &ReplPanel{Frame: dock.NewFrame(dock.REPL), Input: newReplInput()}
}

// Append adds text to the transcript, one entry per line, and jumps back to
// the newest output.
func (r *ReplPanel) Append(kind LineKind, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		r.Output = append(r.Output, OutputLine{Text: line, Kind: kind})
	}
	r.trim()
}

func (r *ReplPanel) trim() {
	if len(r.Output) > config.MaxOutputLines {
		r.Output = r.Output[len(r.Output)-config.MaxOutputLines:]
	}
	r.Scroll = 0
}

// Echo writes code to the transcript with interactive prompts.
func (r *ReplPanel) Echo(code string) {
	for i, line := range strings.Split(code, "\n") {
		prompt := "... "
		if i == 0 {
			prompt = ">>> "
		}
		r.Output = append(r.Output, OutputLine{Text: prompt + line, Kind: LineInput})
	}
	r.trim()
}

// PushHistory records a submitted snippet, skipping repeats.
func (r *ReplPanel) PushHistory(code string) {
	if n := len(r.History); n == 0 || r.History[n-1] != code {
		r.History = append(r.History, code)
	}
	if len(r.History) > config.MaxHistory {
		r.History = r.History[len(r.History)-config.MaxHistory:]
	}
	r.histIdx = len(r.History)
	r.draft = ""
}

// HistoryPrev recalls the previous snippet into the input.
func (r *ReplPanel) HistoryPrev() {
	if r.histIdx == 0 {
		return
	}
	if r.histIdx == len(r.History) {
		r.draft = r.Input.Value()
	}
	r.histIdx--
	r.Input.SetValue(r.History[r.histIdx])
}

// HistoryNext walks forward, ending at the unsent draft.
func (r *ReplPanel) HistoryNext() {
	if r.histIdx >= len(r.History) {
		return
	}
	r.histIdx++
	if r.histIdx == len(r.History) {
		r.Input.SetValue(r.draft)
		return
	}
	r.Input.SetValue(r.History[r.histIdx])
}

// ScrollBy scrolls the transcript; positive n moves towards older output.
func (r *ReplPanel) ScrollBy(n int) {
	r.Scroll = max(0, min(r.Scroll+n, max(len(r.Output)-1, 0)))
}

// ClearOutput empties the transcript. Input and history are kept.
func (r *ReplPanel) ClearOutput() {
	r.Output = nil
	r.Scroll = 0
}

// ExplorerPanel is the file browser with its editor.
type ExplorerPanel struct {
	*dock.Frame

	Model  *explorer.Model
	Editor textarea.Model
	// synced is the editor text as last loaded from the model.
	synced string
	// EditorFocused routes typing to the editor instead of the listing.
	EditorFocused bool
	// Filtering routes typing to the quick filter.
	Filtering  bool
	ListOffset int
}

// NewExplorerPanel wraps an explorer model.
func NewExplorerPanel(m *explorer.Model) *ExplorerPanel {
	return &ExplorerPanel{Frame: dock.NewFrame(dock.Explorer), Model: m, Editor: newFileEditor()}
}

// SyncEditor reloads the editor from the model's buffer.
func (e *ExplorerPanel) SyncEditor() {
	e.Editor.SetValue(e.Model.Buffer)
	e.Editor.MoveToBegin()
	e.synced = e.Editor.Value()
}

// CommitEditor pushes the editor text into the model. An untouched editor
// leaves the buffer alone, so tabs in a file survive a save.
func (e *ExplorerPanel) CommitEditor() {
	if v := e.Editor.Value(); v != e.synced {
		e.Model.Edit(v)
		e.synced = v
	}
}

// EnsureCursorVisible scrolls the listing so the cursor row is within rows.
func (e *ExplorerPanel) EnsureCursorVisible(rows int) {
	if rows <= 0 {
		return
	}
	c := e.Model.Cursor
	if c < e.ListOffset {
		e.ListOffset = c
	}
	if c >= e.ListOffset+rows {
		e.ListOffset = c - rows + 1
	}
	e.ListOffset = max(0, min(e.ListOffset, max(len(e.Model.Entries)-rows, 0)))
}
