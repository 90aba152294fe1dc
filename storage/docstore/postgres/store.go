package pgstore

import (
	"database/sql"
	"embed"
	"encoding/json"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

// Migrations holds the goose migration files for this backend.
//
//go:embed migrations
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"

// the document is stored as a single row
const documentID = 1

type documentRow struct {
	ID        int       `db:"id"`
	Version   int       `db:"version"`
	UpdatedAt time.Time `db:"updated_at"`
	Doc       []byte    `db:"doc"`
}

// Store persists the document as one JSONB row. Replace is a single
// upsert statement, atomic by construction.
type Store struct {
	db *sqlx.DB
}

var _ school.Store = (*Store)(nil)

// Open connects to the configured database.
func Open(conf *core.Config) (*Store, error) {
	db, err := openDB(conf)
	if err != nil {
		return nil, err
	}
	return &Store{db: sqlx.NewDb(db, conf.Storage.Database.Engine)}, nil
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Load() (school.Document, error) {
	var row documentRow
	err := s.db.Get(&row, `SELECT id, version, updated_at, doc FROM documents WHERE id = $1`, documentID)
	if err == sql.ErrNoRows {
		return school.NewDocument(), nil
	}
	if err != nil {
		return school.Document{}, errors.Wrap(err, "selecting document")
	}

	var doc school.Document
	if err := json.Unmarshal(row.Doc, &doc); err != nil {
		return school.Document{}, errors.Wrap(err, "unmarshaling document")
	}
	doc.Version = row.Version
	doc.UpdatedAt = row.UpdatedAt
	school.Normalize(&doc)
	return doc, nil
}

func (s *Store) Replace(doc school.Document) error {
	doc.Version++
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshaling document")
	}
	_, err = s.db.Exec(
		`INSERT INTO documents (id, version, updated_at, doc) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET version = $2, updated_at = $3, doc = $4`,
		documentID, doc.Version, doc.UpdatedAt, data,
	)
	return errors.Wrap(err, "upserting document")
}

// OpenDB opens a raw connection for migrations.
func OpenDB(conf *core.Config) (*sql.DB, error) {
	return openDB(conf)
}

func openDB(conf *core.Config) (*sql.DB, error) {
	dbConf := conf.Storage.Database

	sslMode := "require"
	if dbConf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   dbConf.Engine,
		User:     url.UserPassword(dbConf.User, dbConf.Password),
		Host:     dbConf.Address(),
		Path:     dbConf.Name,
		RawQuery: q.Encode(),
	}
	db, err := sql.Open(dbConf.Engine, u.String())
	return db, errors.Wrap(err, "opening database")
}
