package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

// Store persists the document as one JSON file. Replace writes a
// temporary file in the same directory and renames it over the target,
// so a crash mid-write never corrupts the previous document.
type Store struct {
	path  string
	mutex sync.Mutex
}

var _ school.Store = (*Store)(nil)

func Open(conf *core.Config) *Store {
	return &Store{path: conf.Storage.FilePath}
}

func (s *Store) Load() (school.Document, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return school.NewDocument(), nil
	}
	if err != nil {
		return school.Document{}, errors.Wrapf(err, "reading %s", s.path)
	}

	var doc school.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return school.Document{}, errors.Wrapf(err, "unmarshaling %s", s.path)
	}
	school.Normalize(&doc)
	return doc, nil
}

func (s *Store) Replace(doc school.Document) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc.Version++
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling document")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file in %s", dir)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "renaming onto %s", s.path)
	}
	return nil
}
