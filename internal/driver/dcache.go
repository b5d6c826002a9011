package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"datacheck/internal/ast"
	"datacheck/internal/dataclass"
	"datacheck/internal/diag"
	"datacheck/internal/fixture"
	"datacheck/internal/source"
	"datacheck/internal/types"
)

// Current schema version - increment when SignaturePayload format changes.
const diskCacheSchemaVersion uint16 = 2

// Digest keys cached artifacts by content hash.
type Digest [32]byte

// SignatureKey derives the cache key for one class inside one fixture file:
// the file's content hash mixed with the class name, so an edited fixture
// or a renamed class invalidates the entry.
func SignatureKey(file *source.File, className string) Digest {
	h := sha256.New()
	h.Write(file.Hash[:])
	h.Write([]byte(className))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// ParamPayload is the serialised form of one synthesized parameter. Names
// and type labels are stored as strings: interner IDs are module-local and
// meaningless across processes. Span offsets stay valid because the cache
// key pins the exact file content.
type ParamPayload struct {
	Name     string
	Type     string
	Required bool
	Start    uint32
	End      uint32
}

// SignaturePayload stores a synthesized constructor signature on disk so a
// batch run can skip re-deriving unchanged fixtures.
type SignaturePayload struct {
	Schema uint16

	ClassName string
	Params    []ParamPayload

	// Whether the declaring class produced declaration diagnostics; a
	// broken class must be re-analysed for its diagnostics even on a hit.
	Broken bool
}

// DiskCache persists signature payloads keyed by Digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory keeps the cache root listable and easy to clear.
	return filepath.Join(c.dir, "sigs", hexKey+".mp")
}

// Put serializes and writes a payload, replacing any previous entry
// atomically.
func (c *DiskCache) Put(key Digest, payload *SignaturePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	payload.Schema = diskCacheSchemaVersion
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads a payload. A missing entry or a schema mismatch is a clean
// miss, not an error.
func (c *DiskCache) Get(key Digest, out *SignaturePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// StoreSignatures persists every class signature of an analyzed module.
func (c *DiskCache) StoreSignatures(res *Result, file *source.File) error {
	if c == nil || res == nil || file == nil {
		return nil
	}
	mod := res.Module
	broken := res.Bag.HasErrors()
	for _, classID := range mod.Classes() {
		sig := res.Cache.Signature(mod, classID, diag.NopReporter{})
		payload := payloadFromSignature(mod, sig, broken)
		if err := c.Put(SignatureKey(file, payload.ClassName), payload); err != nil {
			return err
		}
	}
	return nil
}

func payloadFromSignature(mod *ast.Module, sig *dataclass.Signature, broken bool) *SignaturePayload {
	payload := &SignaturePayload{
		ClassName: mod.Strings.MustLookup(sig.Name),
		Params:    make([]ParamPayload, 0, len(sig.Params)),
		Broken:    broken,
	}
	for _, p := range sig.Params {
		payload.Params = append(payload.Params, ParamPayload{
			Name:     mod.Strings.MustLookup(p.Name),
			Type:     mod.Types.Label(p.Type, mod.Strings),
			Required: p.Required,
			Start:    p.Span.Start,
			End:      p.Span.End,
		})
	}
	return payload
}

// signatureFromPayload rebuilds an in-memory signature from a cached
// payload. Returns false when a stored type label no longer resolves
// against the module; the caller then derives from scratch.
func signatureFromPayload(mod *ast.Module, classID ast.ClassID, fileID source.FileID, payload *SignaturePayload) (*dataclass.Signature, bool) {
	sig := &dataclass.Signature{
		Class:  classID,
		Name:   mod.Strings.Intern(payload.ClassName),
		Params: make([]dataclass.Param, 0, len(payload.Params)),
	}
	for _, p := range payload.Params {
		ty := fixture.ResolveType(mod, p.Type)
		if ty == types.NoTypeID {
			return nil, false
		}
		sig.Params = append(sig.Params, dataclass.Param{
			Name:     mod.Strings.Intern(p.Name),
			Type:     ty,
			Required: p.Required,
			Span:     source.Span{File: fileID, Start: p.Start, End: p.End},
		})
	}
	return sig, true
}
