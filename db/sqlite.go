package db

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS datum (
	key BLOB PRIMARY KEY,
	value BLOB NOT NULL
) WITHOUT ROWID`

// SqliteDB stores entries in a sqlite table keyed by the record key
type SqliteDB struct {
	DB *sql.DB
}

// OpenSqlite opens the sqlite file at path
func OpenSqlite(path string, mode Mode) (*SqliteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeError("open", err)
	}
	// one writer, one transaction
	db.SetMaxOpenConns(1)
	if mode == ModeNew {
		if _, err := db.Exec(sqliteSchema); err != nil {
			db.Close()
			return nil, storeError("open", err)
		}
	} else if err := db.Ping(); err != nil {
		db.Close()
		return nil, storeError("open", err)
	}
	return &SqliteDB{DB: db}, nil
}

func (s *SqliteDB) NewTransaction() (Transaction, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, storeError("begin", err)
	}
	stmt, err := tx.Prepare("INSERT INTO datum (key, value) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return nil, storeError("begin", err)
	}
	return &sqliteTransaction{tx: tx, stmt: stmt}, nil
}

// Iterate walks the table in key order. BLOB keys compare with memcmp,
// which is the same order as the other backends.
func (s *SqliteDB) Iterate(fn func(key, value []byte) error) error {
	rows, err := s.DB.Query("SELECT key, value FROM datum ORDER BY key")
	if err != nil {
		return storeError("iterate", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return storeError("iterate", err)
		}
		if err := fn(key, value); err != nil {
			return storeError("iterate", err)
		}
	}
	return storeError("iterate", rows.Err())
}

func (s *SqliteDB) Close() error {
	return storeError("close", s.DB.Close())
}

type sqliteTransaction struct {
	tx   *sql.Tx
	stmt *sql.Stmt
	done bool
}

func (t *sqliteTransaction) Put(key, value []byte) error {
	_, err := t.stmt.Exec(key, value)
	return storeError("put", err)
}

func (t *sqliteTransaction) Commit() error {
	t.done = true
	t.stmt.Close()
	return storeError("commit", t.tx.Commit())
}

func (t *sqliteTransaction) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.stmt.Close()
	t.tx.Rollback()
}
