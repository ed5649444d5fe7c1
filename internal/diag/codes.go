package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Структурные / лексические (exit 1)
	ParseInfo             Code = 1000
	ParseUnclosedComment  Code = 1001
	ParseUnclosedString   Code = 1002
	ParseUnclosedBracket  Code = 1003
	ParseMissingSemicolon Code = 1004
	ParseBadDefine        Code = 1005
	ParseBadTypedef       Code = 1006
	ParseBadStructDef     Code = 1007
	ParseBadDefinition    Code = 1008

	// Контракт входного файла (exit 2)
	ContractInfo             Code = 2000
	ContractMissingNamespace Code = 2001

	// Ошибки I/O (exit 3)
	IOInfo          Code = 3000
	IOUnreadable    Code = 3001
	IOCacheCorrupt  Code = 3002
	IOWriteFailed   Code = 3003
	IOListMalformed Code = 3004

	// splice check (exit 4)
	CheckInfo        Code = 4000
	CheckNotFixpoint Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		ParseInfo:                "Parse information",
		ParseUnclosedComment:     "Unclosed comment",
		ParseUnclosedString:      "Unclosed string",
		ParseUnclosedBracket:     "Unclosed bracket",
		ParseMissingSemicolon:    "Missing semicolon",
		ParseBadDefine:           "Could not parse #define",
		ParseBadTypedef:          "Could not parse typedef",
		ParseBadStructDef:        "Could not parse struct def",
		ParseBadDefinition:       "Could not parse func/struct def",
		ContractInfo:             "Contract information",
		ContractMissingNamespace: "Missing namespace marker",
		IOInfo:                   "I/O information",
		IOUnreadable:             "Could not read file",
		IOCacheCorrupt:           "Index cache entry is corrupt",
		IOWriteFailed:            "Could not write output",
		IOListMalformed:          "Malformed library list",
		CheckInfo:                "Check information",
		CheckNotFixpoint:         "Input is not a fixpoint",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PARSE%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CTR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CHK%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Category groups codes by the process exit status they produce.
type Category uint8

const (
	CatUnknown Category = iota
	CatParse
	CatContract
	CatIO
	CatCheck
)

// Category derives the category from the numeric range of the code.
func (c Code) Category() Category {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return CatParse
	case ic >= 2000 && ic < 3000:
		return CatContract
	case ic >= 3000 && ic < 4000:
		return CatIO
	case ic >= 4000 && ic < 5000:
		return CatCheck
	}
	return CatUnknown
}

// ExitCode is the process status for a run aborted by an error of this category.
// Unknown failures are reported as parse failures.
func (c Category) ExitCode() int {
	switch c {
	case CatContract:
		return 2
	case CatIO:
		return 3
	case CatCheck:
		return 4
	default:
		return 1
	}
}

func (c Category) String() string {
	switch c {
	case CatParse:
		return "parse"
	case CatContract:
		return "contract"
	case CatIO:
		return "io"
	case CatCheck:
		return "check"
	}
	return "unknown"
}
