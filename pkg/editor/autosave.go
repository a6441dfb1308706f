package editor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sketchdoc/sketchdoc/pkg/errors"
	"github.com/sketchdoc/sketchdoc/pkg/history"
	"github.com/sketchdoc/sketchdoc/pkg/observability"
	"github.com/sketchdoc/sketchdoc/pkg/snapshot"
)

// Autosave defaults.
const (
	// DefaultAutosaveEvery is the number of history events between
	// automatic snapshots.
	DefaultAutosaveEvery = 10

	// DefaultAutosavePrefix is the snapshot name prefix for automatic
	// snapshots.
	DefaultAutosavePrefix = "autosave"
)

// AutosaveConfig configures an [Autosave].
type AutosaveConfig struct {
	// Store receives the snapshots. Required.
	Store snapshot.Store

	// Every is the number of history events (execute, undo, redo) between
	// snapshots. Non-positive values fall back to [DefaultAutosaveEvery].
	Every int

	// Keep bounds how many automatic snapshots are retained. After each
	// write, older snapshots carrying the autosave prefix are deleted down
	// to this count. Zero keeps all.
	Keep int

	// Prefix names the snapshots; a timestamp and sequence number are
	// appended. Empty falls back to [DefaultAutosavePrefix]; at most 100
	// characters so composed names stay valid. Snapshots written manually
	// under a different prefix are never pruned.
	Prefix string

	// Context is used for store operations. Defaults to
	// [context.Background].
	Context context.Context
}

// Autosave writes document snapshots to a store as edits accumulate. It is
// a [history.Listener]: attach it with [Autosave.Start] and detach it with
// [Autosave.Stop].
//
// Snapshot writes happen synchronously on the editing goroutine, matching
// the single-threaded editing model. Failures are reported through
// [observability.SnapshotHooks] and do not interrupt editing.
type Autosave struct {
	editor *Editor
	store  snapshot.Store
	every  int
	keep   int
	prefix string
	ctx    context.Context

	events int
	seq    int
}

var _ history.Listener = (*Autosave)(nil)

// NewAutosave creates an autosave listener for the editor.
func NewAutosave(ed *Editor, cfg AutosaveConfig) (*Autosave, error) {
	if ed == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "autosave requires an editor")
	}
	if cfg.Store == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "autosave requires a snapshot store")
	}
	if cfg.Every <= 0 {
		cfg.Every = DefaultAutosaveEvery
	}
	if cfg.Keep < 0 {
		cfg.Keep = 0
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultAutosavePrefix
	}
	if len(cfg.Prefix) > 100 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "autosave prefix too long (max 100 characters)")
	}
	if err := errors.ValidateSnapshotName(cfg.Prefix); err != nil {
		return nil, err
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	return &Autosave{
		editor: ed,
		store:  cfg.Store,
		every:  cfg.Every,
		keep:   cfg.Keep,
		prefix: cfg.Prefix,
		ctx:    cfg.Context,
	}, nil
}

// Start attaches the listener to the editor's history.
func (a *Autosave) Start() {
	a.editor.History().Subscribe(a)
}

// Stop detaches the listener. Pending event counts are kept, so a later
// Start resumes where editing left off.
func (a *Autosave) Stop() {
	a.editor.History().Unsubscribe(a)
}

// HistoryChanged implements [history.Listener]. Every configured number of
// events it serializes the document and writes a snapshot.
func (a *Autosave) HistoryChanged(history.EventKind, history.Command) {
	a.events++
	if a.events < a.every {
		return
	}
	a.events = 0
	a.write()
}

func (a *Autosave) write() {
	// The sequence keeps names unique when several snapshots land within
	// the same timestamp tick.
	a.seq++
	name := fmt.Sprintf("%s-%s-%04d", a.prefix, time.Now().UTC().Format("20060102-150405"), a.seq)

	var buf bytes.Buffer
	if err := a.editor.WriteTo(&buf); err != nil {
		observability.Snapshot().OnWrite(a.ctx, name, 0, err)
		return
	}

	snap := snapshot.New(name, a.editor.Diagram().Name(), buf.Bytes())
	err := a.store.Put(a.ctx, snap)
	observability.Snapshot().OnWrite(a.ctx, name, buf.Len(), err)
	if err != nil || a.keep <= 0 {
		return
	}
	a.prune()
}

// prune deletes the oldest autosave snapshots beyond the retention count.
// Snapshots without the autosave prefix are left alone.
func (a *Autosave) prune() {
	infos, err := a.store.List(a.ctx)
	if err != nil {
		observability.Snapshot().OnPrune(a.ctx, 0, err)
		return
	}

	var mine []snapshot.Info
	for _, info := range infos {
		if strings.HasPrefix(info.Name, a.prefix+"-") {
			mine = append(mine, info)
		}
	}
	if len(mine) <= a.keep {
		return
	}

	removed := 0
	for _, info := range mine[a.keep:] {
		if err := a.store.Delete(a.ctx, info.Name); err != nil {
			observability.Snapshot().OnPrune(a.ctx, removed, err)
			return
		}
		removed++
	}
	observability.Snapshot().OnPrune(a.ctx, removed, nil)
}
