// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the archive tables and their columns so queries never
// spell identifiers by hand.
package schema

// ArchiveShowTable represents the 'archive_shows' table
type ArchiveShowTable struct {
	Table    string
	ID       string
	Name     string
	Slug     string
	Page     string
	SyncedAt string
}

// ArchiveShow is the schema definition for archive_shows
var ArchiveShow = ArchiveShowTable{
	Table:    "archive_shows",
	ID:       "id",
	Name:     "name",
	Slug:     "slug",
	Page:     "page",
	SyncedAt: "synced_at",
}

func (t ArchiveShowTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Page, t.SyncedAt}
}
