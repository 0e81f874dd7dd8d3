package repository

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"

	"github.com/dastanaron/ffmarks/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db      *sql.DB
	records *recordRepo
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db:      db,
		records: &recordRepo{db: db},
	}, nil
}

// dsn turns a filesystem path into a SQLite URI. The path is escaped so
// '?', '#' and '%' stay part of the file name.
func dsn(dbPath string) string {
	u := url.URL{Path: dbPath}
	return "file:" + u.EscapedPath() + "?_journal_mode=WAL&_synchronous=NORMAL"
}

func initSchema(db *sql.DB) error {
	createTables := `
	CREATE TABLE IF NOT EXISTS records (
		seq INTEGER NOT NULL,
		depth INTEGER NOT NULL,
		guid TEXT UNIQUE,
		parent_guid TEXT,
		title TEXT NOT NULL,
		position INTEGER,
		date_added INTEGER,
		last_modified INTEGER,
		source_id INTEGER,
		type_code INTEGER,
		type TEXT NOT NULL,
		root TEXT,
		uri TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_records_parent ON records(parent_guid);
	CREATE INDEX IF NOT EXISTS idx_records_seq ON records(seq);
	`
	_, err := db.Exec(createTables)
	return err
}

// Records returns the record repository
func (r *SQLiteRepository) Records() RecordRepository {
	return r.records
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// recordRepo implements RecordRepository
type recordRepo struct {
	db *sql.DB
}

const selectRecords = `
	SELECT depth, guid, parent_guid, title, position, date_added, last_modified,
	       source_id, type_code, type, root, uri
	FROM records`

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (Row, error) {
	var row Row
	r := &row.Record
	var guid sql.NullString
	err := s.Scan(&row.Depth, &guid, &r.ParentGUID, &r.Title, &r.Index, &r.DateAdded, &r.LastModified,
		&r.ID, &r.TypeCode, &r.Type, &r.Root, &r.URI)
	r.GUID = guid.String
	return row, err
}

func (r *recordRepo) query(q string, args ...any) ([]Row, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

const upsertRecord = `
	INSERT INTO records(seq, depth, guid, parent_guid, title, position, date_added, last_modified,
	                    source_id, type_code, type, root, uri)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(guid) DO UPDATE SET
		seq = excluded.seq,
		depth = excluded.depth,
		parent_guid = excluded.parent_guid,
		title = excluded.title,
		position = excluded.position,
		date_added = excluded.date_added,
		last_modified = excluded.last_modified,
		source_id = excluded.source_id,
		type_code = excluded.type_code,
		type = excluded.type,
		root = excluded.root,
		uri = excluded.uri`

func (r *recordRepo) Replace(rows []Row) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if err := replaceTx(tx, rows); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("Warning: rollback failed: %v", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func replaceTx(tx *sql.Tx, rows []Row) error {
	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(upsertRecord)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for seq := range rows {
		rec := &rows[seq].Record
		var guid any
		if rec.GUID != "" {
			guid = rec.GUID
		}
		_, err := stmt.Exec(seq, rows[seq].Depth, guid, rec.ParentGUID, rec.Title, rec.Index,
			rec.DateAdded, rec.LastModified, rec.ID, rec.TypeCode, rec.Type, rec.Root, rec.URI)
		if err != nil {
			return fmt.Errorf("failed to store record %d (%q): %w", seq, rec.Title, err)
		}
	}
	return nil
}

func (r *recordRepo) List() ([]Row, error) {
	return r.query(selectRecords + ` ORDER BY seq`)
}

func (r *recordRepo) GetByGUID(guid string) (*models.Record, error) {
	row, err := scanRow(r.db.QueryRow(selectRecords+` WHERE guid = ?`, guid))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row.Record, nil
}

func (r *recordRepo) Children(parentGUID string) ([]models.Record, error) {
	rows, err := r.query(selectRecords+` WHERE parent_guid = ? ORDER BY seq`, parentGUID)
	if err != nil {
		return nil, err
	}
	records := make([]models.Record, len(rows))
	for i := range rows {
		records[i] = rows[i].Record
	}
	return records, nil
}

func (r *recordRepo) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}
