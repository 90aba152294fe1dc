package inmemstore

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

// Store keeps the document in memory. Used in DEV and tests.
type Store struct {
	mutex sync.RWMutex
	doc   school.Document
}

var _ school.Store = (*Store)(nil)

func Open() *Store {
	return &Store{doc: school.NewDocument()}
}

// Load returns a deep copy so callers can mutate freely before Replace.
func (s *Store) Load() (school.Document, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	doc, err := deepCopy(s.doc)
	if err != nil {
		return school.Document{}, err
	}
	school.Normalize(&doc)
	return doc, nil
}

func (s *Store) Replace(doc school.Document) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp, err := deepCopy(doc)
	if err != nil {
		return err
	}
	cp.Version = s.doc.Version + 1
	cp.UpdatedAt = time.Now().UTC()
	s.doc = cp
	return nil
}

func deepCopy(doc school.Document) (school.Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return school.Document{}, errors.Wrap(err, "marshaling document")
	}
	var cp school.Document
	if err := json.Unmarshal(data, &cp); err != nil {
		return school.Document{}, errors.Wrap(err, "unmarshaling document")
	}
	return cp, nil
}
