package engine

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/gogpu/inkwell/strokes"
)

// Snapshot is the persisted form of an engine: the document model plus
// every stroke with the component state needed to rebuild the store. The
// rendering cache and the history are not persisted, both are rebuilt.
type Snapshot struct {
	Version  int            `json:"version"`
	Document *Document      `json:"document"`
	Strokes  []strokeRecord `json:"strokes"`
}

type strokeRecord struct {
	Stroke  json.RawMessage `json:"stroke"`
	Chrono  uint64          `json:"chrono"`
	Trashed bool            `json:"trashed"`
}

const snapshotVersion = 1

// TakeSnapshot captures the current document and strokes.
func (e *Engine) TakeSnapshot() (*Snapshot, error) {
	snap := &Snapshot{
		Version:  snapshotVersion,
		Document: e.Document,
	}
	for _, key := range e.Store.KeysSortedChrono() {
		stroke, ok := e.Store.GetStroke(key)
		if !ok {
			continue
		}
		data, err := strokes.MarshalStroke(stroke)
		if err != nil {
			return nil, fmt.Errorf("engine: snapshot: %w", err)
		}
		stamp, _ := e.Store.ChronoStamp(key)
		snap.Strokes = append(snap.Strokes, strokeRecord{
			Stroke:  data,
			Chrono:  stamp,
			Trashed: e.Store.IsTrashed(key),
		})
	}
	return snap, nil
}

// LoadSnapshot replaces the engine state with the snapshot's. The history
// restarts at the loaded state.
func (e *Engine) LoadSnapshot(snap *Snapshot) error {
	if snap.Version > snapshotVersion {
		return fmt.Errorf("engine: snapshot version %d is newer than supported %d",
			snap.Version, snapshotVersion)
	}

	e.Store.Clear()
	records := append([]strokeRecord(nil), snap.Strokes...)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Chrono < records[j].Chrono
	})
	for _, rec := range records {
		stroke, err := strokes.UnmarshalStroke(rec.Stroke)
		if err != nil {
			return fmt.Errorf("engine: snapshot: %w", err)
		}
		key := e.Store.InsertStroke(stroke)
		if rec.Trashed {
			e.Store.SetTrashed(key, true)
		}
	}
	if snap.Document != nil {
		e.Document = snap.Document
	}
	e.Store.ClearHistory()
	return nil
}

// Save writes the engine state as gzipped JSON.
func (e *Engine) Save(w io.Writer) error {
	snap, err := e.TakeSnapshot()
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		zw.Close()
		return fmt.Errorf("engine: saving: %w", err)
	}
	return zw.Close()
}

// Load replaces the engine state from gzipped JSON written by Save.
func (e *Engine) Load(r io.Reader) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("engine: loading: %w", err)
	}
	defer zr.Close()

	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return fmt.Errorf("engine: loading: %w", err)
	}
	return e.LoadSnapshot(&snap)
}
