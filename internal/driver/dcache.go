package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"badnames/internal/diag"
	"badnames/internal/rules"
	"badnames/internal/source"
	"badnames/internal/syntax"
)

// Current schema version - increment when CachePayload format changes.
const diskCacheSchemaVersion uint16 = 1

// CacheKey addresses one cached file pass.
type CacheKey [32]byte

// DiskCache хранит сырые результаты проверки файлов на диске.
// Ключ учитывает содержимое файла и набор правил, поэтому запись
// никогда не устаревает, а только перестаёт находиться.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the serialized form of a file pass before options apply.
type CachePayload struct {
	Schema  uint16
	Path    string
	Records []CacheRecord
}

// CacheRecord mirrors record with offsets instead of a bound span.
type CacheRecord struct {
	Node     uint32
	Start    uint32
	End      uint32
	Severity uint8
	Code     uint16
	Message  string
	// set for malformed nodes
	Malformed bool
	Kind      uint8
	Text      string
	Reason    string
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app, or dir when set.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// KeyFor derives the cache key of a file pass.
func KeyFor(fingerprint string, f *source.File) CacheKey {
	h := sha256.New()
	fmt.Fprintf(h, "v%d\x00%s\x00%s\x00", diskCacheSchemaVersion, fingerprint, filepath.Ext(f.Path))
	h.Write(f.Hash[:])
	var key CacheKey
	copy(key[:], h.Sum(nil))
	return key
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не держать всё в одной папке
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or a stale schema reports false.
func (c *DiskCache) Get(key CacheKey, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

// toPayload converts records. Errors that are not malformed input are not
// cacheable; ok is false then.
func toPayload(path string, recs []record) (*CachePayload, bool) {
	p := &CachePayload{Schema: diskCacheSchemaVersion, Path: path, Records: make([]CacheRecord, 0, len(recs))}
	for _, rec := range recs {
		cr := CacheRecord{Node: uint32(rec.node), Start: rec.span.Start, End: rec.span.End}
		if rec.failed() {
			var me *rules.MalformedInputError
			if !errors.As(rec.err, &me) {
				return nil, false
			}
			cr.Malformed = true
			cr.Kind = uint8(me.Kind)
			cr.Text = me.Text
			cr.Reason = me.Reason
		} else {
			cr.Severity = uint8(rec.diag.Severity)
			cr.Code = uint16(rec.diag.Code)
			cr.Message = rec.diag.Message
		}
		p.Records = append(p.Records, cr)
	}
	return p, true
}

// fromPayload rebinds cached records to file id.
func fromPayload(p *CachePayload, id source.FileID) []record {
	recs := make([]record, 0, len(p.Records))
	for _, cr := range p.Records {
		span := source.Span{File: id, Start: cr.Start, End: cr.End}
		node := syntax.NodeID(cr.Node)
		rec := record{node: node, span: span}
		if cr.Malformed {
			rec.err = &rules.MalformedInputError{Node: node, Kind: syntax.Kind(cr.Kind), Text: cr.Text, Reason: cr.Reason}
		} else {
			rec.diag = diag.Diagnostic{
				Severity: diag.Severity(cr.Severity),
				Code:     diag.Code(cr.Code),
				Message:  cr.Message,
				Primary:  span,
				Anchor:   node,
			}
		}
		recs = append(recs, rec)
	}
	return recs
}
