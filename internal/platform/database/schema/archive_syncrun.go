// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ArchiveSyncRunTable represents the 'archive_sync_runs' table
type ArchiveSyncRunTable struct {
	Table      string
	ID         string
	StartedAt  string
	FinishedAt string
	Pages      string
	Shows      string
	Status     string
	Error      string
}

// ArchiveSyncRun is the schema definition for archive_sync_runs
var ArchiveSyncRun = ArchiveSyncRunTable{
	Table:      "archive_sync_runs",
	ID:         "id",
	StartedAt:  "started_at",
	FinishedAt: "finished_at",
	Pages:      "pages",
	Shows:      "shows",
	Status:     "status",
	Error:      "error",
}

func (t ArchiveSyncRunTable) Columns() []string {
	return []string{t.ID, t.StartedAt, t.FinishedAt, t.Pages, t.Shows, t.Status, t.Error}
}
