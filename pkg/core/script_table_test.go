package core

import (
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage"
	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestScriptTable(t *testing.T) {
	store := storage.NewMemoryStore()
	st, err := NewScriptTable(store, 2)
	require.NoError(t, err)

	scripts := [][]byte{{1}, {2}, {3}}
	hashes := make([]util.Uint160, len(scripts))
	for i, s := range scripts {
		hashes[i], err = st.Put(s)
		require.NoError(t, err)
		require.Equal(t, hash.Hash160(s), hashes[i])
	}

	// The first script is evicted from the cache and read from the store.
	for i := range scripts {
		s, err := st.GetScript(hashes[i])
		require.NoError(t, err)
		require.Equal(t, scripts[i], s)
	}

	t.Run("persisted", func(t *testing.T) {
		other, err := NewScriptTable(store, 1)
		require.NoError(t, err)
		s, err := other.GetScript(hashes[1])
		require.NoError(t, err)
		require.Equal(t, scripts[1], s)
	})

	t.Run("for each", func(t *testing.T) {
		var seen []util.Uint160
		require.NoError(t, st.ForEach(func(u util.Uint160) bool {
			seen = append(seen, u)
			return true
		}))
		require.ElementsMatch(t, hashes, seen)

		seen = seen[:0]
		require.NoError(t, st.ForEach(func(u util.Uint160) bool {
			seen = append(seen, u)
			return false
		}))
		require.Len(t, seen, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Delete(hashes[2]))
		_, err := st.GetScript(hashes[2])
		require.ErrorIs(t, err, ErrScriptNotFound)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := st.Put(nil)
		require.Error(t, err)
		_, err = NewScriptTable(store, 0)
		require.Error(t, err)
	})
}
