package storage

import (
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestContextItem(t *testing.T) {
	a := stackitem.NewArena(0)
	for _, c := range []Context{
		{ScriptHash: util.Uint160{1, 2, 3}},
		{ScriptHash: util.Uint160{4, 5, 6}, ReadOnly: true},
	} {
		it, err := a.NewInterop(c.Bytes())
		require.NoError(t, err)
		actual, err := ContextFromItem(it)
		require.NoError(t, err)
		require.Equal(t, c, actual)
	}

	bad, err := a.NewInterop([]byte{1, 2, 3})
	require.NoError(t, err)
	_, err = ContextFromItem(bad)
	require.Error(t, err)

	ba, err := a.NewByteArray(Context{}.Bytes())
	require.NoError(t, err)
	_, err = ContextFromItem(ba)
	require.Error(t, err)
}

func TestKey(t *testing.T) {
	u := util.Uint160{1}
	k := Key(u, []byte("key"))
	require.Equal(t, byte(storage.STStorage), k[0])
	require.Equal(t, u.BytesBE(), k[1:21])
	require.Equal(t, []byte("key"), k[21:])
}
