// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ArchiveCastMemberTable represents the 'archive_cast_members' table
type ArchiveCastMemberTable struct {
	Table     string
	ShowID    string
	Position  string
	MemberID  string
	Name      string
	BirthDate string
}

// ArchiveCastMember is the schema definition for archive_cast_members
var ArchiveCastMember = ArchiveCastMemberTable{
	Table:     "archive_cast_members",
	ShowID:    "show_id",
	Position:  "position",
	MemberID:  "member_id",
	Name:      "name",
	BirthDate: "birth_date",
}

func (t ArchiveCastMemberTable) Columns() []string {
	return []string{t.ShowID, t.Position, t.MemberID, t.Name, t.BirthDate}
}
