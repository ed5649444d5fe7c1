package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"splice/internal/decl"
)

// UnitOutput describes one declaration unit for JSON output. Lines are
// 1-based and inclusive.
type UnitOutput struct {
	Kind      string   `json:"kind"`
	Keyword   string   `json:"keyword,omitempty"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Body      []string `json:"body,omitempty"`
}

// UnitsOutput is the root of `splice units --format json`.
type UnitsOutput struct {
	File  string       `json:"file"`
	Units []UnitOutput `json:"units"`
	Count int          `json:"count"`
}

// BuildUnitsOutput assigns line ranges to units, which cover the file
// back to back.
func BuildUnitsOutput(path string, units []decl.Unit, withBody bool) UnitsOutput {
	out := UnitsOutput{File: path, Units: make([]UnitOutput, 0, len(units))}
	line := 1
	for _, u := range units {
		uo := UnitOutput{
			Kind:      u.Kind().String(),
			Keyword:   u.Keyword,
			StartLine: line,
			EndLine:   line + len(u.Body) - 1,
		}
		if withBody {
			uo.Body = u.Body
		}
		out.Units = append(out.Units, uo)
		line += len(u.Body)
	}
	out.Count = len(out.Units)
	return out
}

// FormatUnitsPretty выводит юниты в человекочитаемом формате
func FormatUnitsPretty(w io.Writer, path string, units []decl.Unit) error {
	for i, u := range BuildUnitsOutput(path, units, false).Units {
		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, u.Kind); err != nil {
			return err
		}
		if u.Keyword != "" {
			if _, err := fmt.Fprintf(w, " %q", u.Keyword); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " at %d-%d\n", u.StartLine, u.EndLine); err != nil {
			return err
		}
	}
	return nil
}

// FormatUnitsJSON выводит юниты в JSON формате
func FormatUnitsJSON(w io.Writer, path string, units []decl.Unit) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildUnitsOutput(path, units, true))
}
