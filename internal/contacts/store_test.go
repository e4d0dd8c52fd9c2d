package contacts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "contacts.json"))
}

func TestAddFillsDerivedFields(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add(Contact{FirstName: "Jean", LastName: "Dupont", Phone: "+331"})
	require.NoError(t, err)

	assert.Equal(t, "Jean Dupont", added.FullName)
	assert.NotEmpty(t, added.AddedAt)
	assert.Len(t, s.List(), 1)
}

func TestRemoveByPhoneOrFullName(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(Contact{LastName: "Dupont", Phone: "+331"})
	require.NoError(t, err)
	_, err = s.Add(Contact{FirstName: "Anna", LastName: "Marchand", Phone: "+332"})
	require.NoError(t, err)

	removed, ok, err := s.Remove("+331")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "+331", removed.Phone)

	_, ok, err = s.Remove("Anna Marchand")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, _ = s.Remove("nobody")
	assert.False(t, ok)
	assert.Empty(t, s.List())
}

func TestImportAndClear(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Import([]Contact{
		{LastName: "A", Phone: "+1"},
		{LastName: "B", Phone: "+2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, s.List(), 2)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.List())
}
