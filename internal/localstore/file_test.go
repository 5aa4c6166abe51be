package localstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	type entry struct {
		ID       string  `json:"id"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	}
	saved := []entry{{"p1", 99.5, 2}, {"p2", 10, 1}}
	require.NoError(t, store.Save(KeyCart, saved))

	var loaded []entry
	require.NoError(t, store.Load(KeyCart, &loaded))
	assert.Equal(t, saved, loaded)
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	loaded := []string{"untouched"}
	require.NoError(t, store.Load("never-written", &loaded), "missing key is not an error")
	assert.Equal(t, []string{"untouched"}, loaded)
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(KeyWishlist, []string{"a", "b"}))
	require.NoError(t, store.Save(KeyWishlist, []string{"c"}))

	var loaded []string
	require.NoError(t, store.Load(KeyWishlist, &loaded))
	assert.Equal(t, []string{"c"}, loaded, "writes replace the whole value, last write wins")
}
