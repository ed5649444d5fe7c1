package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet keeps every file read during a run so diagnostics can quote the
// offending line.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add normalizes content, splits it into trimmed lines and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	return fileSet.Adopt(NewFile(path, content, flags))
}

// Load reads a file from disk and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, 0), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Len returns the number of files added so far.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetByPath возвращает *File по пути, если был загружен в этот FileSet.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// NewFile builds a standalone File outside any FileSet: BOM and CRLF are
// normalized, lines are split and trimmed, and the hash covers the normalized
// content. The loader calls it from worker goroutines and adopts the results
// afterwards.
func NewFile(path string, content []byte, flags FileFlags) File {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return File{
		Path:  normalizePath(path),
		Lines: SplitLines(content),
		Hash:  sha256.Sum256(content),
		Flags: flags,
	}
}

// Adopt appends an already-built File, assigning it a fresh ID.
func (fileSet *FileSet) Adopt(f File) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	f.ID = FileID(lenFiles)
	f.Path = normalizePath(f.Path)
	fileSet.files = append(fileSet.files, f)
	fileSet.index[f.Path] = f.ID
	return f.ID
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	idx, err := safecast.Conv[int](lineNum - 1)
	if err != nil {
		return ""
	}
	return f.Lines.Line(idx)
}
