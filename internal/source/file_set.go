package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the content of every file visited in one run.
// Files are added before analysis starts; afterwards the set is read-only
// and may be shared between goroutines.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string            // base for relative display paths
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a FileSet whose relative paths are computed against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// SetBaseDir sets the directory used for relative display paths.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Add stores normalized content, computes LineIdx and Hash and returns a fresh FileID.
// A new FileID is issued even when the path is already present.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(n)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM, normalizes CRLF and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.AddNormalized(path, content), nil
}

// AddNormalized behaves like Load for content that is already in memory.
func (fileSet *FileSet) AddNormalized(path string, content []byte) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// HasFile reports whether id belongs to this set.
func (fileSet *FileSet) HasFile(id FileID) bool {
	return int(id) < len(fileSet.files)
}

// Get returns the file for id, or nil when the id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if !fileSet.HasFile(id) {
		return nil
	}
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID registered for path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into 1-based line/column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Slice returns the text covered by span, clamped to the file bounds.
func (fileSet *FileSet) Slice(span Span) string {
	f := fileSet.Get(span.File)
	if f == nil {
		return ""
	}
	start, end := int(span.Start), int(span.End)
	if end > len(f.Content) {
		end = len(f.Content)
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// GetLine returns the 1-based line lineNum without its trailing newline.
// An empty string is returned for lines outside the file.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	size := len(f.Content)
	var start int
	switch {
	case lineNum == 1:
		start = 0
	case int(lineNum-2) < len(f.LineIdx):
		start = int(f.LineIdx[lineNum-2]) + 1
	default:
		return ""
	}
	end := size
	if int(lineNum-1) < len(f.LineIdx) {
		end = int(f.LineIdx[lineNum-1])
	}
	if start >= size {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the file path for display.
// mode: "absolute", "relative", "basename", "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// короткие и относительные пути оставляем как есть
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)
	default:
		return f.Path
	}
}
