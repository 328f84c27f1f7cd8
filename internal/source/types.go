package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (test fixture, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file whose UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose CRLF line endings were rewritten.
	FileNormalizedCRLF
)

// File holds the content and derived metadata of a single Python source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n', for offset -> line/col resolution
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
