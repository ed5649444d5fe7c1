package decl

import (
	"strings"

	"splice/internal/lexer"
)

// Kind is the classification of a unit as reported by `splice units`.
type Kind uint8

const (
	KindMisc Kind = iota
	KindBlank
	KindInclude
	KindNamespace
	KindDefine
	KindTypedef
	KindTemplate
	KindComposite
	KindFunction
)

var kindNames = [...]string{
	KindMisc:      "misc",
	KindBlank:     "blank",
	KindInclude:   "include",
	KindNamespace: "namespace",
	KindDefine:    "define",
	KindTypedef:   "typedef",
	KindTemplate:  "template",
	KindComposite: "struct",
	KindFunction:  "function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Kind derives the classification from the keyword and, for typedefs versus
// structs, from whichever of the two keywords appears first in the code.
func (u Unit) Kind() Kind {
	switch {
	case u.IsBlank():
		return KindBlank
	case u.IsInclude():
		return KindInclude
	case u.IsNamespaceMarker():
		return KindNamespace
	case u.IsSimpleDefine():
		return KindDefine
	case u.Keyword == "":
		return KindMisc
	case strings.HasSuffix(u.Keyword, "<"):
		return KindTemplate
	case strings.HasSuffix(u.Keyword, "("):
		return KindFunction
	}

	c := lexer.NewCursor(u.Body)
	for {
		if err := c.SkipTrivia(); err != nil || c.EOF() {
			return KindComposite
		}
		switch c.Keyword() {
		case "typedef":
			return KindTypedef
		case "struct", "class":
			return KindComposite
		case "":
			c.Next()
		}
	}
}
