package school

import (
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
)

var (
	// errors
	ErrNotFound = stderrors.New("record not found")
	ErrNoTenant = stderrors.New("no tenant identity")
)

// Service exposes the tenant-scoped repository operations over the
// document store. Every operation takes the caller's tenant identity
// explicitly; the core never resolves it from ambient state.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) load() (Document, error) {
	doc, err := s.store.Load()
	if err != nil {
		return Document{}, errors.Wrap(err, "loading document")
	}
	return doc, nil
}

func (s *Service) replace(doc Document) error {
	return errors.Wrap(s.store.Replace(doc), "replacing document")
}

// requireTenant rejects mutations with no resolvable tenant identity:
// every record created through the normal flow has exactly one owner.
func requireTenant(viewer null.String) (string, error) {
	if !viewer.Valid || core.CleanString(viewer.String) == "" {
		return "", ErrNoTenant
	}
	return viewer.String, nil
}

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

// ClaimUnowned assigns every unowned record across all collections to
// the given tenant and persists the result. A second call finds
// nothing unowned and returns 0.
func (s *Service) ClaimUnowned(tenantID string) (int, error) {
	tenantID = core.CleanString(tenantID)
	if tenantID == "" {
		return 0, ErrNoTenant
	}
	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	n := ClaimUnowned(tenantID, &doc)
	if n == 0 {
		return 0, nil
	}
	return n, s.replace(doc)
}
