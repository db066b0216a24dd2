package app

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/explorer"
	"github.com/pyducation/pyducation/internal/pyrt"
)

func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.RuntimeCallTimeout)
}

// explorerFailed reports a failed explorer operation in the REPL transcript.
func (d *Desktop) explorerFailed(op string, err error) {
	d.Repl.Append(LineSystem, explorer.Failure(op, err))
	d.LogError("explorer %s: %v", op, err)
}

// guardDirty runs fn right away, or after confirmation when the open file
// has unsaved edits.
func (d *Desktop) guardDirty(fn func(d *Desktop) tea.Cmd) tea.Cmd {
	if !d.Explorer.Model.Dirty {
		return fn(d)
	}
	d.Confirm("Unsaved changes", "Discard the edits to "+d.Explorer.Model.Selected+"?", fn)
	return nil
}

// ExplorerOpen opens the highlighted entry.
func (d *Desktop) ExplorerOpen() tea.Cmd {
	e, ok := d.Explorer.Model.Current()
	if !ok {
		return nil
	}
	open := func(d *Desktop) tea.Cmd {
		ctx, cancel := callCtx()
		defer cancel()
		if err := d.Explorer.Model.Open(ctx, e); err != nil {
			d.explorerFailed("open", err)
			return nil
		}
		if e.IsDir {
			d.Explorer.ListOffset = 0
		} else {
			d.Explorer.SyncEditor()
			d.Explorer.EditorFocused = true
		}
		return nil
	}
	// Entering a directory keeps the open file.
	if e.IsDir {
		return open(d)
	}
	return d.guardDirty(open)
}

// ExplorerUp goes to the parent directory.
func (d *Desktop) ExplorerUp() {
	ctx, cancel := callCtx()
	defer cancel()
	if err := d.Explorer.Model.Up(ctx); err != nil && !errors.Is(err, explorer.ErrAboveRoot) {
		d.explorerFailed("up", err)
	}
	d.Explorer.ListOffset = 0
}

// ExplorerSwitchRoot toggles between /persist and /tmp.
func (d *Desktop) ExplorerSwitchRoot() {
	root := pyrt.TmpRoot
	if d.Explorer.Model.Root == pyrt.TmpRoot {
		root = pyrt.PersistRoot
	}
	ctx, cancel := callCtx()
	defer cancel()
	if err := d.Explorer.Model.SwitchRoot(ctx, root); err != nil {
		d.explorerFailed("switch root", err)
		return
	}
	d.Explorer.ListOffset = 0
}

// ExplorerSave writes the editor back to the runtime.
func (d *Desktop) ExplorerSave() {
	d.Explorer.CommitEditor()
	ctx, cancel := callCtx()
	defer cancel()
	msg, err := d.Explorer.Model.Save(ctx)
	if err != nil {
		d.explorerFailed("save", err)
		return
	}
	d.Repl.Append(LineSystem, msg)
}

// ExplorerNewFile prompts for a name and creates an empty file.
func (d *Desktop) ExplorerNewFile() tea.Cmd {
	return d.guardDirty(func(d *Desktop) tea.Cmd {
		d.Prompt("New file", "Name in "+d.Explorer.Model.Cwd, "", func(d *Desktop, name string) tea.Cmd {
			ctx, cancel := callCtx()
			defer cancel()
			if err := d.Explorer.Model.NewFile(ctx, name); err != nil {
				d.explorerFailed("new file", err)
				return nil
			}
			d.Explorer.SyncEditor()
			d.Explorer.EditorFocused = true
			return nil
		})
		return nil
	})
}

// ExplorerNewFolder prompts for a name and creates a directory.
func (d *Desktop) ExplorerNewFolder() {
	d.Prompt("New folder", "Name in "+d.Explorer.Model.Cwd, "", func(d *Desktop, name string) tea.Cmd {
		ctx, cancel := callCtx()
		defer cancel()
		if err := d.Explorer.Model.NewFolder(ctx, name); err != nil {
			d.explorerFailed("new folder", err)
		}
		return nil
	})
}

// ExplorerDelete asks before deleting the highlighted entry.
func (d *Desktop) ExplorerDelete() {
	e, ok := d.Explorer.Model.Current()
	if !ok {
		return
	}
	path := pyrt.Join(d.Explorer.Model.Cwd, e.Name)
	d.Confirm("Delete", "Delete "+path+"?", func(d *Desktop) tea.Cmd {
		ctx, cancel := callCtx()
		defer cancel()
		if err := d.Explorer.Model.Delete(ctx, e.Name); err != nil {
			d.explorerFailed("delete", err)
			return nil
		}
		if d.Explorer.Model.Selected == "" {
			d.Explorer.SyncEditor()
			d.Explorer.EditorFocused = false
		}
		return nil
	})
}

// ExplorerImport prompts for a host file and copies it into the listing.
func (d *Desktop) ExplorerImport() {
	d.Prompt("Import", "Host file to copy into "+d.Explorer.Model.Cwd, "", func(d *Desktop, host string) tea.Cmd {
		ctx, cancel := callCtx()
		defer cancel()
		p, err := d.Explorer.Model.Import(ctx, host)
		if err != nil {
			d.explorerFailed("import", err)
			return nil
		}
		d.Repl.Append(LineSystem, "[explorer] imported: "+p)
		return nil
	})
}

// ExplorerExport prompts for a host path and writes the open file there.
func (d *Desktop) ExplorerExport() {
	if d.Explorer.Model.Selected == "" {
		d.explorerFailed("export", explorer.ErrNoSelection)
		return
	}
	d.Prompt("Export", "Host path for "+d.Explorer.Model.Selected, ".", func(d *Desktop, host string) tea.Cmd {
		ctx, cancel := callCtx()
		defer cancel()
		p, err := d.Explorer.Model.Export(ctx, host)
		if err != nil {
			d.explorerFailed("export", err)
			return nil
		}
		d.Repl.Append(LineSystem, "[explorer] exported: "+p)
		return nil
	})
}
