package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "dev.x.config.json"))
}

func readDocument(t *testing.T, s *Store) Document {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestEnsureExistsCreatesEmptyDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureExists())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"components": []}`, string(data))
}

func TestEnsureExistsKeepsExistingDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert("Button", "./ui"))
	require.NoError(t, s.EnsureExists())

	doc := readDocument(t, s)
	assert.Equal(t, []Record{{Name: "Button", Output: "./ui"}}, doc.Components)
}

func TestFindMissingManifest(t *testing.T) {
	s := newTestStore(t)
	_, ok, err := s.Find("Button", "./ui")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindMatchesBothFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert("Button", "./ui"))

	rec, ok, err := s.Find("Button", "./ui")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Record{Name: "Button", Output: "./ui"}, rec)

	_, ok, err = s.Find("Button", "./other")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Find("button", "./ui")
	require.NoError(t, err)
	assert.False(t, ok, "lookup is case-sensitive")
}

func TestUpsertReplacesInPlace(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert("Input", "./ui"))
	require.NoError(t, s.Upsert("Button", "./ui"))
	require.NoError(t, s.Upsert("Input", "./ui"))

	doc := readDocument(t, s)
	assert.Equal(t, []Record{
		{Name: "Input", Output: "./ui"},
		{Name: "Button", Output: "./ui"},
	}, doc.Components)
}

func TestUpsertSameNameDifferentOutputIsDistinct(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert("Button", "./a"))
	require.NoError(t, s.Upsert("Button", "./b"))

	assert.Equal(t, []string{"Button", "Button"}, s.InstalledNames())
}

func TestUpsertRepairsCorruptDocument(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"invalid json", "{not json"},
		{"missing components", `{"items": []}`},
		{"wrong component shape", `{"components": [{"name": 42}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.contents), 0o644))

			err := s.Upsert("Button", "./ui")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRepaired))

			doc := readDocument(t, s)
			assert.Empty(t, doc.Components)

			require.NoError(t, s.Upsert("Button", "./ui"))
			_, ok, err := s.Find("Button", "./ui")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestCorruptDocumentReadsAsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("]]"), 0o644))

	_, ok, err := s.Find("Button", "./ui")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{}, s.InstalledNames())
}

func TestUnreadableManifest(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.Mkdir(s.Path(), 0o755))

	_, _, err := s.Find("Button", "./ui")
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, s.Path(), readErr.Path)

	assert.Equal(t, []string{}, s.InstalledNames())

	_, err = s.Records()
	require.Error(t, err)

	err = s.Upsert("Button", "./ui")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRepaired), "repair cannot replace a directory")
}

func TestInstalledNamesOrder(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, []string{}, s.InstalledNames())

	for _, name := range []string{"Input", "Button", "LoginCard"} {
		require.NoError(t, s.Upsert(name, "./ui"))
	}
	assert.Equal(t, []string{"Input", "Button", "LoginCard"}, s.InstalledNames())
}

func TestRecordsMissingManifest(t *testing.T) {
	s := newTestStore(t)
	recs, err := s.Records()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert("Button", "./ui"))

	_, err := os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
