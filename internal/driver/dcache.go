package driver

import (
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/project"
	"pycheck/internal/source"
	"pycheck/internal/version"
)

// resultCache stores per-file diagnostics on disk, keyed by content, tool
// version and suppression configuration. A stale or unreadable entry is
// treated as a miss; cache IO never fails a check run.
type resultCache struct {
	dir string
}

type cacheKey = project.Digest

type cachedDiag struct {
	Code       uint16 `msgpack:"code"`
	Severity   uint8  `msgpack:"severity"`
	Start      uint32 `msgpack:"start"`
	End        uint32 `msgpack:"end"`
	Long       string `msgpack:"description"`
	Short      string `msgpack:"concise_description"`
	Definition string `msgpack:"define,omitempty"`
	Method     bool   `msgpack:"method,omitempty"`
}

type cacheEntry struct {
	Tool  string       `msgpack:"tool"`
	Diags []cachedDiag `msgpack:"diags"`
}

func newResultCache(dir string) *resultCache {
	return &resultCache{dir: dir}
}

func (c *resultCache) key(content []byte, fingerprint string) cacheKey {
	return project.Combine(
		project.HashContent(content),
		project.HashString(version.Plain()),
		project.HashString(fingerprint),
	)
}

func (c *resultCache) path(key cacheKey) string {
	hex := key.Hex()
	return filepath.Join(c.dir, hex[:2], hex+".mp")
}

func (c *resultCache) load(key cacheKey, file source.FileID) ([]diag.Diagnostic, bool) {
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := msgpack.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	if entry.Tool != version.Plain() {
		return nil, false
	}
	out := make([]diag.Diagnostic, 0, len(entry.Diags))
	for _, cd := range entry.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Kind: diag.Restored{
				Original: diag.Code(cd.Code),
				Long:     cd.Long,
				Short:    cd.Short,
			},
			Primary: source.Span{File: file, Start: cd.Start, End: cd.End},
		}
		if cd.Definition != "" {
			d.Signature = diag.Signature{
				Definition: ast.ParseReference(cd.Definition),
				Method:     cd.Method,
			}
		}
		out = append(out, d)
	}
	return out, true
}

func (c *resultCache) store(key cacheKey, diags []diag.Diagnostic) {
	entry := cacheEntry{Tool: version.Plain(), Diags: make([]cachedDiag, 0, len(diags))}
	for _, d := range diags {
		cd := cachedDiag{
			Code:     uint16(d.Code()),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Long:     d.Description(),
			Short:    d.Concise(),
		}
		if !d.Signature.Definition.Empty() {
			cd.Definition = d.Signature.Definition.String()
			cd.Method = d.Signature.Method
		}
		entry.Diags = append(entry.Diags, cd)
	}
	raw, err := msgpack.Marshal(entry)
	if err != nil {
		return
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, path)
}
