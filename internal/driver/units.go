package driver

import (
	"splice/internal/decl"
	"splice/internal/diag"
	"splice/internal/source"
)

// UnitsResult holds the declaration units of one file.
type UnitsResult struct {
	FileSet *source.FileSet
	File    *source.File
	Units   []decl.Unit
}

// Units splits the file at path into declaration units.
func Units(path string) (*UnitsResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return &UnitsResult{FileSet: fs}, diag.Unreadable(path)
	}
	file := fs.Get(id)

	units, err := decl.ExtractAll(file.Lines)
	if err != nil {
		return &UnitsResult{FileSet: fs, File: file}, attribute(err, file.Path)
	}
	return &UnitsResult{FileSet: fs, File: file, Units: units}, nil
}
