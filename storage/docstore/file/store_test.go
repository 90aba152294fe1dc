package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/student"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	conf := *core.Conf
	conf.Storage.FilePath = filepath.Join(t.TempDir(), "ecole.json")
	return Open(&conf)
}

func TestStore_RoundTrip(t *testing.T) {
	store := newStore(t)

	// a missing file yields a fresh document
	doc, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, doc.Version)
	assert.NotEmpty(t, doc.Subjects) // default catalogue

	doc.Students = append(doc.Students, student.Student{
		ID:    "std1",
		Owner: null.StringFrom("ten1"),
		Name:  "Awe Lol",
		Level: "6e",
	})
	entry := grade.Entry{
		ID:        "g1",
		Owner:     null.StringFrom("ten1"),
		StudentID: "std1",
		SubjectID: doc.Subjects[0].ID,
		Term:      grade.Term1,
		Average:   null.Float64From(15.5),
	}
	entry.Scores[0] = null.Float64From(15)
	entry.Scores[1] = null.Float64From(16)
	doc.Grades = append(doc.Grades, entry)
	require.NoError(t, store.Replace(doc))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.False(t, got.UpdatedAt.IsZero())
	assert.Equal(t, doc.Students, got.Students)
	assert.Equal(t, doc.Grades, got.Grades)
	assert.Equal(t, doc.Subjects, got.Subjects)
}

func TestStore_ReplaceIsAtomic(t *testing.T) {
	store := newStore(t)

	doc, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Replace(doc))
	doc, err = store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Replace(doc))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(store.path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
