package depot

import (
	"go.uber.org/zap"
)

// enqueueCreate reserves a handle for an entity that joins the empty table at commit.
func (w *World) enqueueCreate() EntityID {
	e := w.counter.Increment()
	w.pendingMu.Lock()
	w.pendingCreate = append(w.pendingCreate, e)
	w.pendingMu.Unlock()
	return e
}

// enqueueDelete queues e for removal at commit. The entity is resolved to its table only
// then, so migrations in between are honored.
func (w *World) enqueueDelete(e EntityID) error {
	if !w.entities.Has(e) {
		return InvalidEntityError{Entity: e}
	}
	w.pendingMu.Lock()
	w.pendingDelete = append(w.pendingDelete, e)
	w.pendingMu.Unlock()
	return nil
}

// commit applies the structural changes buffered during a tick. Deletions free rows
// first, compaction closes the holes, and creations land in the empty table last.
func (w *World) commit() {
	w.pendingMu.Lock()
	creates, deletes := w.pendingCreate, w.pendingDelete
	w.pendingCreate, w.pendingDelete = nil, nil
	w.pendingMu.Unlock()

	removed := 0
	for _, e := range deletes {
		t, ok := w.tableOf(e)
		if !ok {
			continue
		}
		if t != emptyTable {
			row, _ := t.index.Find(e)
			t.release(e, row)
		}
		w.entities.Remove(e)
		removed++
	}

	compacted := 0
	for t := range w.order.Values() {
		for _, e := range t.drainDeletes() {
			w.entities.Remove(e)
			removed++
		}
		t.clearTickBuffers()
		compacted += t.compact()
	}

	for _, e := range creates {
		w.entities.Put(e, emptyTable.id)
	}

	if len(creates)+removed+compacted > 0 {
		w.log.Debug("tick committed",
			zap.Uint64("tick", w.tick),
			zap.Int("created", len(creates)),
			zap.Int("deleted", removed),
			zap.Int("compacted", compacted),
		)
	}
}
