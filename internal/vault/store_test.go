package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreAddGet(t *testing.T) {
	s := NewStore()

	err := s.Add("example.com", "bob", []byte("s3cr3t"), false)
	assert.NoError(t, err)

	entry, err := s.Get("example.com")
	assert.NoError(t, err)
	assert.Equal(t, "example.com", entry.Site)
	assert.Equal(t, "bob", entry.Username)
	assert.Equal(t, []byte("s3cr3t"), entry.Secret)
}

func TestStoreAddDuplicate(t *testing.T) {
	s := NewStore()

	err := s.Add("example.com", "bob", []byte("first"), false)
	assert.NoError(t, err)

	err = s.Add("example.com", "alice", []byte("second"), false)
	assert.ErrorIs(t, err, ErrEntryExists)

	// The stored entry is untouched by the failed add
	entry, err := s.Get("example.com")
	assert.NoError(t, err)
	assert.Equal(t, "bob", entry.Username)
	assert.Equal(t, []byte("first"), entry.Secret)

	// Overwrite replaces it
	err = s.Add("example.com", "alice", []byte("second"), true)
	assert.NoError(t, err)

	entry, err = s.Get("example.com")
	assert.NoError(t, err)
	assert.Equal(t, "alice", entry.Username)
	assert.Equal(t, []byte("second"), entry.Secret)
	assert.Equal(t, 1, s.Len())
}

func TestStoreGetMissing(t *testing.T) {
	s := NewStore()

	_, err := s.Get("nope.example")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestStoreCaseSensitiveSites(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.Add("Example.com", "upper", []byte("a"), false))
	assert.NoError(t, s.Add("example.com", "lower", []byte("b"), false))
	assert.Equal(t, 2, s.Len())

	entry, err := s.Get("Example.com")
	assert.NoError(t, err)
	assert.Equal(t, "upper", entry.Username)

	entry, err = s.Get("example.com")
	assert.NoError(t, err)
	assert.Equal(t, "lower", entry.Username)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.Add("example.com", "bob", []byte("x"), false))
	assert.NoError(t, s.Delete("example.com"))
	assert.Equal(t, 0, s.Len())

	_, err := s.Get("example.com")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	// Deleting again reports not found
	assert.ErrorIs(t, s.Delete("example.com"), ErrEntryNotFound)
}

func TestStoreSitesAfterDelete(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.Add("a.example", "a", []byte("1"), false))
	assert.NoError(t, s.Add("b.example", "b", []byte("2"), false))
	assert.NoError(t, s.Delete("a.example"))

	assert.Equal(t, []string{"b.example"}, s.Sites())
}

func TestStoreSitesSorted(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.Add("zulu.example", "z", []byte("1"), false))
	assert.NoError(t, s.Add("alpha.example", "a", []byte("2"), false))
	assert.NoError(t, s.Add("mike.example", "m", []byte("3"), false))

	assert.Equal(t, []string{"alpha.example", "mike.example", "zulu.example"}, s.Sites())
}

func TestStoreSitesEmpty(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.Sites())
	assert.Equal(t, 0, s.Len())
}

func TestStoreWipe(t *testing.T) {
	s := NewStore()

	secret := []byte("super-secret")
	assert.NoError(t, s.Add("example.com", "bob", secret, false))

	s.Wipe()

	assert.Equal(t, 0, s.Len())
	// The secret bytes themselves are zeroed, not just dropped
	for i, b := range secret {
		assert.Zerof(t, b, "secret byte %d not zeroed", i)
	}
}

func TestStoreZeroValueUsable(t *testing.T) {
	// A Store decoded from JSON may arrive with a nil map
	var s Store

	assert.NoError(t, s.Add("example.com", "bob", []byte("x"), false))
	entry, err := s.Get("example.com")
	assert.NoError(t, err)
	assert.Equal(t, "bob", entry.Username)
}
