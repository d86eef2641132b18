// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/showcast/internal/platform/database/schema"
	"github.com/taibuivan/showcast/internal/platform/dberr"
	"github.com/taibuivan/showcast/pkg/slug"
)

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

// # Shows

/*
SavePage upserts the shows of one catalog page and replaces their cast.

Description: Runs in a single transaction. Shows are upserted in one batch,
their previous cast rows are deleted and the new cast is streamed with COPY,
position preserving the sorted order.

Parameters:
  - context: context.Context
  - page: int (catalog page the shows were listed on)
  - shows: []Show (with cast already sorted)

Returns:
  - error: INTERNAL_ERROR on any database failure
*/
func (repository *PostgresRepository) SavePage(context context.Context, page int, shows []Show) error {
	if len(shows) == 0 {
		return nil
	}

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Archived show", "begin_save_page")
	}
	defer func() { _ = tx.Rollback(context) }()

	syncedAt := repository.now().UTC()
	table := schema.ArchiveShow

	// 1. Upsert the shows
	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		table.Table, table.ID, table.Name, table.Slug, table.Page, table.SyncedAt,
		table.ID,
		table.Name, table.Name, table.Slug, table.Slug, table.Page, table.Page, table.SyncedAt, table.SyncedAt,
	)

	batch := &pgx.Batch{}
	ids := make([]int, 0, len(shows))
	for _, item := range shows {
		batch.Queue(upsert, item.ID, item.Name, slug.WithID(item.Name, item.ID, "show"), page, syncedAt)
		ids = append(ids, item.ID)
	}

	if err := tx.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "Archived show", "upsert_shows")
	}

	// 2. Replace the cast
	cast := schema.ArchiveCastMember
	deleteCast := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, cast.Table, cast.ShowID)
	if _, err := tx.Exec(context, deleteCast, ids); err != nil {
		return dberr.Wrap(err, "Archived show", "delete_cast")
	}

	var rows [][]any
	for _, item := range shows {
		for position, member := range item.Cast {
			rows = append(rows, []any{item.ID, position, member.ID, member.Name, member.BirthDate})
		}
	}

	if len(rows) > 0 {
		if _, err := tx.CopyFrom(context, pgx.Identifier{cast.Table}, cast.Columns(), pgx.CopyFromRows(rows)); err != nil {
			return dberr.Wrap(err, "Archived show", "copy_cast")
		}
	}

	return dberr.Wrap(tx.Commit(context), "Archived show", "commit_save_page")
}

// List returns archived shows ordered by ID with their cast, plus the total count.
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]ArchivedShow, int, error) {
	table := schema.ArchiveShow

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Archived show", "count_archived_shows")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		strings.Join(table.Columns(), ", "), table.Table, table.ID,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Archived show", "list_archived_shows")
	}
	defer rows.Close()

	archived := []ArchivedShow{}
	for rows.Next() {
		item, err := scanArchivedShow(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Archived show", "scan_archived_show")
		}
		archived = append(archived, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Archived show", "list_archived_shows")
	}

	if err := repository.attachCast(context, archived); err != nil {
		return nil, 0, err
	}

	return archived, total, nil
}

// FindByID returns one archived show by its catalog identifier.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*ArchivedShow, error) {
	return repository.findOne(context, schema.ArchiveShow.ID, id)
}

// FindBySlug returns one archived show by its slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*ArchivedShow, error) {
	return repository.findOne(context, schema.ArchiveShow.Slug, slug)
}

func (repository *PostgresRepository) findOne(context context.Context, column string, value any) (*ArchivedShow, error) {
	table := schema.ArchiveShow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, column,
	)

	item, err := scanArchivedShow(repository.db.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, "Archived show", "find_archived_show")
	}

	archived := []ArchivedShow{*item}
	if err := repository.attachCast(context, archived); err != nil {
		return nil, err
	}

	return &archived[0], nil
}

// attachCast loads the cast of every show in one query, in stored order.
func (repository *PostgresRepository) attachCast(context context.Context, archived []ArchivedShow) error {
	if len(archived) == 0 {
		return nil
	}

	index := make(map[int]*ArchivedShow, len(archived))
	ids := make([]int, 0, len(archived))
	for i := range archived {
		archived[i].Cast = []CastMember{}
		index[archived[i].ID] = &archived[i]
		ids = append(ids, archived[i].ID)
	}

	cast := schema.ArchiveCastMember
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s, %s`,
		cast.ShowID, cast.MemberID, cast.Name, cast.BirthDate, cast.Table,
		cast.ShowID, cast.ShowID, cast.Position,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "Cast member", "load_cast")
	}
	defer rows.Close()

	for rows.Next() {
		var showID int
		var member CastMember
		if err := rows.Scan(&showID, &member.ID, &member.Name, &member.BirthDate); err != nil {
			return dberr.Wrap(err, "Cast member", "scan_cast_member")
		}
		if owner, ok := index[showID]; ok {
			owner.Cast = append(owner.Cast, member)
		}
	}

	return dberr.Wrap(rows.Err(), "Cast member", "load_cast")
}

func scanArchivedShow(row pgx.Row) (*ArchivedShow, error) {
	item := &ArchivedShow{}
	err := row.Scan(&item.ID, &item.Name, &item.Slug, &item.Page, &item.SyncedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// # Sync Runs

// StartRun persists run in its initial state.
func (repository *PostgresRepository) StartRun(context context.Context, run *SyncRun) error {
	table := schema.ArchiveSyncRun
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		table.Table, table.ID, table.StartedAt, table.Pages, table.Shows, table.Status,
	)

	_, err := repository.db.Exec(context, query, run.ID, run.StartedAt, run.Pages, run.Shows, string(run.Status))
	return dberr.Wrap(err, "Sync run", "start_sync_run")
}

// FinishRun stores the outcome of run.
func (repository *PostgresRepository) FinishRun(context context.Context, run *SyncRun) error {
	table := schema.ArchiveSyncRun
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NULLIF($6, '')
		WHERE %s = $1
	`,
		table.Table,
		table.FinishedAt, table.Pages, table.Shows, table.Status, table.Error,
		table.ID,
	)

	tag, err := repository.db.Exec(context, query, run.ID, run.FinishedAt, run.Pages, run.Shows, string(run.Status), run.Error)
	if err != nil {
		return dberr.Wrap(err, "Sync run", "finish_sync_run")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Sync run", "finish_sync_run")
	}
	return nil
}

// LatestRun returns the most recently started run.
func (repository *PostgresRepository) LatestRun(context context.Context) (*SyncRun, error) {
	table := schema.ArchiveSyncRun
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, COALESCE(%s, '')
		FROM %s
		ORDER BY %s DESC
		LIMIT 1
	`,
		table.ID, table.StartedAt, table.FinishedAt, table.Pages, table.Shows, table.Status, table.Error,
		table.Table,
		table.StartedAt,
	)

	run := &SyncRun{}
	var status string
	err := repository.db.QueryRow(context, query).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Pages, &run.Shows, &status, &run.Error,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Sync run", "latest_sync_run")
	}

	run.Status = SyncStatus(status)
	return run, nil
}
