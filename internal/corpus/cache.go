package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/keylab/internal/kb"
	"github.com/verte-zerg/keylab/internal/lang"
)

// Bump when the cached payload format changes.
const cacheSchemaVersion uint16 = 1

// cachePayload is the on-disk form of ingested counts.
type cachePayload struct {
	Schema   uint16
	Alphabet string
	Mono     []int64
	Bi       []int64
	Tri      []int64
	Quad     []int64
	Skip     [][]int64
}

// Cache stores ingested corpus counts on disk, keyed by a digest of
// the corpus bytes and the alphabet. Re-analyzing the same corpus
// skips the ingestion pass entirely.
type Cache struct {
	dir string
}

// OpenCache initializes a corpus cache under the given directory.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key digests a corpus file together with the alphabet it will be
// ingested under.
func (c *Cache) Key(corpusPath string, a *lang.Alphabet) (string, error) {
	file, err := os.Open(corpusPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus file.
			_ = cerr
		}
	}()

	h := sha256.New()
	h.Write([]byte(a.Chars()))
	h.Write([]byte{0})
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to digest corpus: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".mp")
}

// Get loads cached counts for a key. The second return value reports
// whether a usable entry was found.
func (c *Cache) Get(key string, a *lang.Alphabet) (*Counts, bool, error) {
	file, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only cache entry.
			_ = cerr
		}
	}()

	var payload cachePayload
	if err := msgpack.NewDecoder(file).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode corpus cache: %w", err)
	}
	if payload.Schema != cacheSchemaVersion || payload.Alphabet != a.Chars() {
		return nil, false, nil
	}
	if len(payload.Skip) != kb.SkipMax || len(payload.Mono) != a.Len() {
		return nil, false, nil
	}

	counts := &Counts{
		L:    a.Len(),
		Mono: payload.Mono,
		Bi:   payload.Bi,
		Tri:  payload.Tri,
		Quad: payload.Quad,
	}
	for d := range counts.Skip {
		counts.Skip[d] = payload.Skip[d]
	}
	return counts, true, nil
}

// Put writes counts to the cache atomically.
func (c *Cache) Put(key string, a *lang.Alphabet, counts *Counts) error {
	payload := cachePayload{
		Schema:   cacheSchemaVersion,
		Alphabet: a.Chars(),
		Mono:     counts.Mono,
		Bi:       counts.Bi,
		Tri:      counts.Tri,
		Quad:     counts.Quad,
		Skip:     make([][]int64, kb.SkipMax),
	}
	for d := range counts.Skip {
		payload.Skip[d] = counts.Skip[d]
	}

	tmp, err := os.CreateTemp(c.dir, "corpus-*.mp")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := msgpack.NewEncoder(tmp).Encode(&payload); err != nil {
		return fmt.Errorf("failed to encode corpus cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.pathFor(key)); err != nil {
		return fmt.Errorf("failed to move cache entry into place: %w", err)
	}
	return nil
}

// Load returns counts for a corpus file, consulting the cache first
// and populating it after a fresh ingestion.
func Load(path string, a *lang.Alphabet, cache *Cache) (*Counts, error) {
	if cache == nil {
		counts := NewCounts(a.Len())
		if err := counts.IngestFile(path, a); err != nil {
			return nil, err
		}
		return counts, nil
	}

	key, err := cache.Key(path, a)
	if err != nil {
		return nil, err
	}
	if counts, ok, err := cache.Get(key, a); err != nil {
		return nil, err
	} else if ok {
		return counts, nil
	}

	counts := NewCounts(a.Len())
	if err := counts.IngestFile(path, a); err != nil {
		return nil, err
	}
	if err := cache.Put(key, a, counts); err != nil {
		return nil, err
	}
	return counts, nil
}
