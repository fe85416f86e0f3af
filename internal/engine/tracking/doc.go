// Package tracking records a document's edit history for external
// consumers — integrations, plugins, or review tooling — that need to ask
// "what changed since revision X?" without re-diffing the whole document
// themselves.
//
// This enables efficient tracking of document changes over time, supporting:
//   - Revision-based change queries ("what changed since revision X?")
//   - Named snapshots for checkpointing document state
//   - Line-level diff computation using the Myers algorithm
//   - Efficient storage through structural sharing of immutable snapshots
//
// # Core Components
//
// The package consists of several interconnected types:
//
//   - [Change]: Represents a single change (insert, delete, or replace)
//   - [Snapshot]: A named checkpoint of document state
//   - [Tracker]: Main type that orchestrates change recording and queries
//   - [LineDiff]: Line-based diff result for external consumption
//
// # Usage
//
// Create a tracker and record changes as they happen:
//
//	tracker := tracking.NewTracker()
//
//	// Record a change
//	change := tracking.Change{
//	    Type:     tracking.ChangeInsert,
//	    Range:    document.Range{Start: 0, End: 0},
//	    NewRange: document.Range{Start: 0, End: 5},
//	    NewText:  "hello",
//	}
//	tracker.RecordChange(revisionID, change, beforeSnapshot)
//
//	// Query changes since a revision
//	changes := tracker.ChangesSince(oldRevisionID)
//
// # Snapshots
//
// Create named snapshots for important checkpoints:
//
//	// Create a snapshot before a bulk edit
//	snapID := tracker.CreateSnapshot("before_bulk_edit", snap, revisionID)
//
//	// Later, get changes since that snapshot
//	changes, err := tracker.DiffSinceSnapshot(snapID)
//
// # Diffing
//
// Compute line-level diffs:
//
//	diffs := tracking.ComputeLineDiff(oldSnap, newSnap, tracking.DiffOptions{
//	    ContextLines: 3,
//	})
//
// # Thread Safety
//
// All Tracker operations are thread-safe through internal locking.
// Snapshots are immutable and can be freely shared across goroutines.
//
// # Performance
//
// The tracking system is designed for efficiency:
//   - Recording a revision snapshot is O(1) due to piece-tree structural sharing
//   - Change history is bounded by a configurable maximum
//   - Ring buffer storage minimizes allocation overhead
package tracking
