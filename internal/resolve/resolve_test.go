package resolve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"splice/internal/diag"
	"splice/internal/library"
	"splice/internal/resolve"
	"splice/internal/source"
)

func newIndex(decls map[string][]string, includes map[string]string) *library.Index {
	ix := library.NewIndex()
	for k, v := range decls {
		ix.Decls[k] = v
	}
	for k, v := range includes {
		ix.Includes[k] = v
	}
	return ix
}

// resolveTwice resolves lines and checks that the result is a fixpoint.
func resolveTwice(t *testing.T, r *resolve.Resolver, lines source.Lines) []string {
	t.Helper()
	got, err := r.Resolve(lines)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	again, err := r.Resolve(got)
	if err != nil {
		t.Fatalf("Resolve(output): %v", err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("output is not a fixpoint (-first +second):\n%s", diff)
	}
	return got
}

func TestResolveGcd(t *testing.T) {
	r := &resolve.Resolver{Index: newIndex(
		map[string][]string{
			"Gcd(": {
				"int Gcd(int a, int b) {",
				"  return b ? Gcd(b, a % b) : a;",
				"}",
				"",
			},
		},
		map[string]string{
			"Gcd(":    "#include <algorithm>",
			"printf(": "#include <cstdio>",
		},
	)}
	in := source.Lines{
		"#include <cstdio>",
		"using namespace std;",
		"",
		"int main() {",
		`  printf("%d\n", Gcd(4, 6));`,
		"}",
	}
	want := []string{
		"#include <algorithm>",
		"#include <cstdio>",
		"using namespace std;",
		"",
		"int Gcd(int a, int b) {",
		"  return b ? Gcd(b, a % b) : a;",
		"}",
		"",
		"int main() {",
		`  printf("%d\n", Gcd(4, 6));`,
		"}",
	}
	got := resolveTwice(t, r, in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTwoHopClosure(t *testing.T) {
	r := &resolve.Resolver{Index: newIndex(map[string][]string{
		"A(": {"int A(int x) {", "  return C(x) + 1;", "}", ""},
		"B(": {"int B(int x) {", "  return C(x) * 2;", "}", ""},
		"C(": {"int C(int x) {", "  return x * x;", "}", ""},
	}, nil)}
	in := source.Lines{
		"int main() {",
		"  return A(1) + B(2);",
		"}",
	}
	want := []string{
		"using namespace std;",
		"",
		"int C(int x) {", "  return x * x;", "}", "",
		"int A(int x) {", "  return C(x) + 1;", "}", "",
		"int B(int x) {", "  return C(x) * 2;", "}", "",
		"int main() {",
		"  return A(1) + B(2);",
		"}",
	}
	got := resolveTwice(t, r, in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTypedefAndDefineRuns(t *testing.T) {
	r := &resolve.Resolver{Index: newIndex(map[string][]string{
		"int64": {"typedef long long int64;"},
		"uint":  {"typedef unsigned int uint;"},
		"MOD":   {"#define MOD 1000000007"},
		"INF":   {"#define INF 1000000000"},
	}, nil)}
	in := source.Lines{
		"int64 Pow(int64 b, int e) {",
		"  return e ? b * Pow(b, e - 1) % MOD : 1;",
		"}",
		"",
		"uint Fold(uint x) {",
		"  return x % INF;",
		"}",
	}
	want := []string{
		"using namespace std;",
		"",
		"typedef long long int64;",
		"typedef unsigned int uint;",
		"",
		"#define MOD 1000000007",
		"#define INF 1000000000",
		"",
		"int64 Pow(int64 b, int e) {",
		"  return e ? b * Pow(b, e - 1) % MOD : 1;",
		"}",
		"",
		"uint Fold(uint x) {",
		"  return x % INF;",
		"}",
	}
	got := resolveTwice(t, r, in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePlacement(t *testing.T) {
	tests := []struct {
		name     string
		decls    map[string][]string
		includes map[string]string
		in       source.Lines
		want     []string
	}{
		{
			name:  "define without typedef run opens a run at the top",
			decls: map[string][]string{"MOD": {"#define MOD 7"}},
			in:    source.Lines{"int f() {", "  return MOD;", "}"},
			want: []string{
				"using namespace std;",
				"",
				"#define MOD 7",
				"",
				"int f() {", "  return MOD;", "}",
			},
		},
		{
			name:  "typedef used inside an open typedef run goes before its use",
			decls: map[string][]string{"int64": {"typedef long long int64;"}},
			in:    source.Lines{"typedef int64 money;", "money x;"},
			want: []string{
				"using namespace std;",
				"",
				"typedef long long int64;",
				"typedef int64 money;",
				"money x;",
			},
		},
		{
			name:  "define used inside an open define run goes before its use",
			decls: map[string][]string{"MOD": {"#define MOD 7"}},
			in:    source.Lines{"#define MOD2 (MOD * MOD)", "int x = MOD2;"},
			want: []string{
				"using namespace std;",
				"",
				"#define MOD 7",
				"#define MOD2 (MOD * MOD)",
				"int x = MOD2;",
			},
		},
		{
			name: "template referenced with angle bracket",
			decls: map[string][]string{
				"Pair<": {"template<class T>", "struct Pair {", "  T a, b;", "};", ""},
			},
			in: source.Lines{"int main() {", "  Pair<int> p;", "}"},
			want: []string{
				"using namespace std;",
				"",
				"template<class T>", "struct Pair {", "  T a, b;", "};", "",
				"int main() {", "  Pair<int> p;", "}",
			},
		},
		{
			name: "include needed only by an inserted declaration",
			decls: map[string][]string{
				"A(": {"int A() {", "  return B();", "}", ""},
				"B(": {"int B() {", "  return max(1, 2);", "}", ""},
			},
			includes: map[string]string{"max(": "#include <algorithm>"},
			in: source.Lines{
				"#include <cstdio>",
				"using namespace std;",
				"",
				"int main() {",
				"  return A();",
				"}",
			},
			want: []string{
				"#include <algorithm>",
				"#include <cstdio>",
				"using namespace std;",
				"",
				"int B() {", "  return max(1, 2);", "}", "",
				"int A() {", "  return B();", "}", "",
				"int main() {", "  return A();", "}",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &resolve.Resolver{Index: newIndex(tt.decls, tt.includes)}
			got := resolveTwice(t, r, tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveSortsAndDedupsIncludes(t *testing.T) {
	r := &resolve.Resolver{Index: newIndex(nil, map[string]string{
		"VI":  "#include <vector>",
		"min": "",
	})}
	in := source.Lines{
		"// Solution",
		"#include <vector>",
		"#include <algorithm>",
		"#include <vector>",
		"using namespace std;",
		"",
		"VI v; int m = min(1, 2);",
	}
	want := []string{
		"// Solution",
		"#include <algorithm>",
		"#include <vector>",
		"using namespace std;",
		"",
		"VI v; int m = min(1, 2);",
	}
	got := resolveTwice(t, r, in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSkipsCommentsAndStrings(t *testing.T) {
	r := &resolve.Resolver{Index: newIndex(map[string][]string{
		"Used(":   {"void Used() {", "}", ""},
		"Unused(": {"void Unused() {", "}", ""},
	}, nil)}
	in := source.Lines{
		"int main() {",
		`  // Unused()`,
		`  puts("Unused()"); /* Unused() */`,
		"  Used();",
		"}",
	}
	got := resolveTwice(t, r, in)
	for _, l := range got {
		if l == "void Unused() {" {
			t.Fatalf("declaration referenced only in trivia was inserted:\n%v", got)
		}
	}
	if got[2] != "void Used() {" {
		t.Errorf("got[2] = %q, want Used inserted before main", got[2])
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines source.Lines
		code  diag.Code
		exit  int
	}{
		{
			name:  "code after includes",
			lines: source.Lines{"#include <cstdio>", "int main() {}"},
			code:  diag.ContractMissingNamespace,
			exit:  2,
		},
		{
			name:  "includes only",
			lines: source.Lines{"#include <cstdio>"},
			code:  diag.ContractMissingNamespace,
			exit:  2,
		},
		{
			name:  "blank line inside include block",
			lines: source.Lines{"#include <a>", "", "#include <b>", "using namespace std;"},
			code:  diag.ContractMissingNamespace,
			exit:  2,
		},
		{
			name:  "unterminated string",
			lines: source.Lines{"using namespace std;", "", `const char* s = "abc;`},
			code:  diag.ParseUnclosedString,
			exit:  1,
		},
	}
	r := &resolve.Resolver{Index: library.NewIndex()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.lines)
			de, ok := diag.As(err)
			if !ok {
				t.Fatalf("expected diag error, got %v", err)
			}
			if de.Code != tt.code {
				t.Errorf("code = %s, want %s", de.Code.ID(), tt.code.ID())
			}
			if got := diag.ExitCode(err); got != tt.exit {
				t.Errorf("exit = %d, want %d", got, tt.exit)
			}
		})
	}
}

func TestResolveEmptyInput(t *testing.T) {
	r := &resolve.Resolver{}
	got, err := r.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"using namespace std;", ""}, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
