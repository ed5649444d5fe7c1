package source

import (
	"bytes"
	"path/filepath"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
)

// normalizeCRLF заменяет \r\n на \n; одиночный \r остаётся, его срежет
// обрезка хвостовых пробелов строки.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte{'\n'}), true
}

// removeBOM срезает UTF-8 BOM в начале файла.
func removeBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, utf8BOM)
}

// normalizePath приводит путь к виду, по которому FileSet ищет файлы.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
