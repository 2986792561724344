package core

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage"
	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
)

// ErrScriptNotFound is returned for unknown script hashes.
var ErrScriptNotFound = errors.New("script not found")

// ScriptTable stores scripts by their hashes, recently used scripts are
// cached in memory. It's safe for concurrent use.
type ScriptTable struct {
	store storage.Store
	cache *lru.Cache
}

// NewScriptTable creates a script table over the given store.
func NewScriptTable(store storage.Store, cacheSize int) (*ScriptTable, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("script cache: %w", err)
	}
	return &ScriptTable{store: store, cache: cache}, nil
}

func scriptKey(u util.Uint160) []byte {
	return storage.AppendPrefix(storage.DataScript, u.BytesBE())
}

// Put stores the script and returns its hash. Storing the same script
// twice is a no-op.
func (t *ScriptTable) Put(script []byte) (util.Uint160, error) {
	if len(script) == 0 {
		return util.Uint160{}, errors.New("empty script")
	}
	u := hash.Hash160(script)
	if err := t.store.Put(scriptKey(u), script); err != nil {
		return util.Uint160{}, err
	}
	t.cache.Add(u, script)
	scriptsDeployed.Inc()
	return u, nil
}

// GetScript returns the script with the given hash. It implements
// interop.ScriptGetter.
func (t *ScriptTable) GetScript(u util.Uint160) ([]byte, error) {
	if v, ok := t.cache.Get(u); ok {
		return v.([]byte), nil
	}
	scriptCacheMisses.Inc()
	script, err := t.store.Get(scriptKey(u))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrScriptNotFound, u.StringLE())
		}
		return nil, err
	}
	t.cache.Add(u, script)
	return script, nil
}

// Delete removes the script from the table.
func (t *ScriptTable) Delete(u util.Uint160) error {
	t.cache.Remove(u)
	return t.store.Delete(scriptKey(u))
}

// ForEach calls f for every stored script hash until it returns false.
func (t *ScriptTable) ForEach(f func(u util.Uint160) bool) error {
	var err error
	t.store.Seek(storage.SeekRange{Prefix: storage.DataScript.Bytes()}, func(k, _ []byte) bool {
		var u util.Uint160
		u, err = util.Uint160DecodeBytesBE(k[1:])
		if err != nil {
			return false
		}
		return f(u)
	})
	return err
}
