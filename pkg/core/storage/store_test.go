package storage

import (
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage/dbconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbSetup struct {
	name   string
	create func(testing.TB) Store
}

type dbTestFunction func(*testing.T, Store)

func newLevelDBForTesting(t testing.TB) Store {
	ldbDir := t.TempDir()
	newLevelStore, err := NewLevelDBStore(dbconfig.LevelDBOptions{DataDirectoryPath: ldbDir})
	require.NoError(t, err, "NewLevelDBStore error")
	return newLevelStore
}

func newBoltStoreForTesting(t testing.TB) Store {
	d := t.TempDir()
	testFileName := filepath.Join(d, "test_bolt_db")
	boltDBStore, err := NewBoltDBStore(dbconfig.BoltDBOptions{FilePath: testFileName})
	require.NoError(t, err)
	return boltDBStore
}

func newMemoryStoreForTesting(t testing.TB) Store {
	return NewMemoryStore()
}

var stores = []dbSetup{
	{"MemoryStore", newMemoryStoreForTesting},
	{"LevelDB", newLevelDBForTesting},
	{"BoltDB", newBoltStoreForTesting},
}

func testStoreGetNonExistent(t *testing.T, s Store) {
	_, err := s.Get([]byte("sparse"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func testStorePutGetDelete(t *testing.T, s Store) {
	key := []byte("foo")
	value := []byte("bar")

	require.NoError(t, s.Put(key, value))
	result, err := s.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, result)

	require.NoError(t, s.Put(key, []byte("baz")))
	result, err = s.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("baz"), result)

	require.NoError(t, s.Delete(key))
	_, err = s.Get(key)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting a missing key is fine.
	require.NoError(t, s.Delete(key))
}

func testStoreChangeSet(t *testing.T, s Store) {
	require.NoError(t, s.Put([]byte("gone"), []byte{1}))
	require.NoError(t, s.PutChangeSet(map[string][]byte{
		"one":  []byte("1"),
		"two":  []byte("2"),
		"gone": nil,
	}))
	for k, v := range map[string]string{"one": "1", "two": "2"} {
		res, err := s.Get([]byte(k))
		require.NoError(t, err)
		assert.Equal(t, []byte(v), res)
	}
	_, err := s.Get([]byte("gone"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func testStoreSeek(t *testing.T, s Store) {
	// Use the same set of kvs to test Seek with different prefix/start values.
	kvs := []KeyValue{
		{[]byte("10"), []byte("bar")},
		{[]byte("11"), []byte("bara")},
		{[]byte("20"), []byte("barb")},
		{[]byte("21"), []byte("barc")},
		{[]byte("22"), []byte("bard")},
		{[]byte("30"), []byte("bare")},
	}
	puts := make(map[string][]byte)
	for _, kv := range kvs {
		puts[string(kv.Key)] = kv.Value
	}
	require.NoError(t, s.PutChangeSet(puts))

	check := func(t *testing.T, rng SeekRange, expected []KeyValue) {
		var actual []KeyValue
		s.Seek(rng, func(k, v []byte) bool {
			actual = append(actual, KeyValue{
				Key:   append([]byte{}, k...),
				Value: append([]byte{}, v...),
			})
			return true
		})
		assert.Equal(t, expected, actual)
	}

	t.Run("forward", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("2")}, kvs[2:5])
		check(t, SeekRange{Prefix: []byte("2"), Start: []byte("1")}, kvs[3:5])
		check(t, SeekRange{Prefix: []byte("2"), Start: []byte("3")}, nil)
		check(t, SeekRange{}, kvs)
	})

	t.Run("backwards", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("2"), Backwards: true}, []KeyValue{kvs[4], kvs[3], kvs[2]})
		check(t, SeekRange{Prefix: []byte("2"), Start: []byte("1"), Backwards: true}, []KeyValue{kvs[3], kvs[2]})
		check(t, SeekRange{Prefix: []byte("3"), Backwards: true}, []KeyValue{kvs[5]})
	})

	t.Run("early stop", func(t *testing.T) {
		var n int
		s.Seek(SeekRange{Prefix: []byte("2")}, func(k, v []byte) bool {
			n++
			return false
		})
		assert.Equal(t, 1, n)
	})
}

func TestAllDBs(t *testing.T) {
	var tests = []dbTestFunction{
		testStoreGetNonExistent,
		testStorePutGetDelete,
		testStoreChangeSet,
		testStoreSeek,
	}
	for _, db := range stores {
		t.Run(db.name, func(t *testing.T) {
			for _, test := range tests {
				s := db.create(t)
				test(t, s)
				require.NoError(t, s.Close())
			}
		})
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(dbconfig.DBConfiguration{Type: dbconfig.InMemoryDB})
	require.NoError(t, err)
	require.IsType(t, (*MemoryStore)(nil), s)

	s, err = NewStore(dbconfig.DBConfiguration{
		Type:          dbconfig.BoltDB,
		BoltDBOptions: dbconfig.BoltDBOptions{FilePath: filepath.Join(t.TempDir(), "db")},
	})
	require.NoError(t, err)
	require.IsType(t, (*BoltDBStore)(nil), s)
	require.NoError(t, s.Close())

	s, err = NewStore(dbconfig.DBConfiguration{
		Type:           dbconfig.LevelDB,
		LevelDBOptions: dbconfig.LevelDBOptions{DataDirectoryPath: t.TempDir()},
	})
	require.NoError(t, err)
	require.IsType(t, (*LevelDBStore)(nil), s)
	require.NoError(t, s.Close())

	_, err = NewStore(dbconfig.DBConfiguration{Type: "redis"})
	require.Error(t, err)
}

func TestAppendPrefix(t *testing.T) {
	assert.Equal(t, []byte{0x01, 1, 2}, AppendPrefix(DataScript, []byte{1, 2}))
	assert.Equal(t, []byte{0x70}, STStorage.Bytes())
}
