package source

import "testing"

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"a\nb", "a\nb", false},
		{"a\r\nb", "a\nb", true},
		{"a\rb", "a\rb", false},
		{"\r\n\r\n", "\n\n", true},
	}
	for _, tt := range tests {
		got, changed := normalizeCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("normalizeCRLF(%q) = (%q, %v), want (%q, %v)", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestRemoveBOM(t *testing.T) {
	got, had := removeBOM([]byte("\xEF\xBB\xBFx"))
	if !had || string(got) != "x" {
		t.Errorf("removeBOM = (%q, %v)", got, had)
	}
	got, had = removeBOM([]byte("xy"))
	if had || string(got) != "xy" {
		t.Errorf("removeBOM short = (%q, %v)", got, had)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath("lib/./math/../macros.h"); got != "lib/macros.h" {
		t.Errorf("normalizePath = %q, want lib/macros.h", got)
	}
}
