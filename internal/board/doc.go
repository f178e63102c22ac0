// Package board holds the kanban task list and keeps its persisted copy in sync.
//
// The persisted value is a single JSON array:
//
//	[
//	  {"id": "1718000000000", "content": "Write spec", "status": "todo"},
//	  {"id": "1718000000001", "content": "Review", "status": "in-progress"}
//	]
//
// # Columns
//
//   - "todo": not started
//   - "in-progress": being worked on
//   - "done": finished
//
// # Persistence
//
// Every mutation re-encodes the whole list and writes it to the injected
// storage.Storage before returning. ClearAll removes the stored value instead
// of writing an empty array.
//
// # Recovery
//
// Load never fails. A missing value, unreadable storage, invalid JSON or a
// payload that violates the board schema all start the board empty; the
// reason is logged at warn level.
//
// # Validation
//
// Decoded payloads are checked against a JSON Schema (draft 2020-12). The
// schema is embedded; ValidationOptions.SchemaPath points at a replacement.
package board
