package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	inc := writeFile(t, dir, "includes.txt", "#include <algorithm>\nGcd(\n")
	lib := writeFile(t, dir, "math.h", strings.Join([]string{
		"//// Greatest common divisor.",
		"int Gcd(int a, int b) {",
		"  return b ? Gcd(b, a % b) : a;",
		"}",
	}, "\n")+"\n")
	list := writeFile(t, dir, "libraries.txt", lib+"\n")
	return Options{IncludesPath: inc, ListPath: list, Jobs: 2}
}

const gcdInput = `#include <cstdio>
using namespace std;

int main() {
  printf("%d\n", Gcd(4, 6));
}
`

const gcdOutput = `#include <algorithm>
#include <cstdio>
using namespace std;

int Gcd(int a, int b) {
  return b ? Gcd(b, a % b) : a;
}
int main() {
  printf("%d\n", Gcd(4, 6));
}
`

func TestProcess(t *testing.T) {
	opts := testOptions(t)
	var stdout, stderr bytes.Buffer
	code := Process(context.Background(), opts, strings.NewReader(gcdInput), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
	if diff := cmp.Diff(gcdOutput, stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
}

func TestProcessFailureEchoesInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		mutate func(t *testing.T, o *Options)
		exit   int
		code   string
	}{
		{
			name:  "unterminated string",
			input: "int main() {\n  puts(\"abc);\n}\n",
			exit:  1,
			code:  "PARSE1002",
		},
		{
			name:  "missing namespace marker",
			input: "#include <cstdio>\nint main() {}\n",
			exit:  2,
			code:  "CTR2001",
		},
		{
			name:  "unreadable library list",
			input: "int main() {}\n",
			mutate: func(t *testing.T, o *Options) {
				o.ListPath = filepath.Join(t.TempDir(), "missing.txt")
			},
			exit: 3,
			code: "IO3001",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t)
			if tt.mutate != nil {
				tt.mutate(t, &opts)
			}
			var stdout, stderr bytes.Buffer
			code := Process(context.Background(), opts, strings.NewReader(tt.input), &stdout, &stderr)
			if code != tt.exit {
				t.Errorf("exit = %d, want %d", code, tt.exit)
			}
			if diff := cmp.Diff(tt.input, stdout.String()); diff != "" {
				t.Errorf("stdout must echo the input (-want +got):\n%s", diff)
			}
			if !strings.HasPrefix(stderr.String(), "// PROCESS ERROR:") {
				t.Errorf("stderr = %q, want PROCESS ERROR prefix", stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.code) {
				t.Errorf("stderr = %q, want code %s", stderr.String(), tt.code)
			}
		})
	}
}

func TestProcessUnreadableFileHeadline(t *testing.T) {
	opts := testOptions(t)
	opts.ListPath = filepath.Join(t.TempDir(), "missing.txt")
	var stdout, stderr bytes.Buffer
	Process(context.Background(), opts, strings.NewReader("int main() {}\n"), &stdout, &stderr)

	first, _, _ := strings.Cut(stderr.String(), "\n")
	want := fmt.Sprintf("// PROCESS ERROR: Could not read file %q.", opts.ListPath)
	if first != want {
		t.Errorf("first stderr line = %q, want %q", first, want)
	}
}

func TestProcessTimings(t *testing.T) {
	opts := testOptions(t)
	opts.Timings = true
	var stdout, stderr bytes.Buffer
	if code := Process(context.Background(), opts, strings.NewReader(gcdInput), &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
	for _, phase := range []string{"read", "index", "resolve", "write", "total"} {
		if !strings.Contains(stderr.String(), "// timing: "+phase) {
			t.Errorf("timings missing %q:\n%s", phase, stderr.String())
		}
	}
}

func TestCheck(t *testing.T) {
	opts := testOptions(t)
	dir := t.TempDir()

	var stderr bytes.Buffer
	done := writeFile(t, dir, "done.cc", gcdOutput)
	if code := Check(context.Background(), opts, done, &stderr); code != 0 {
		t.Errorf("resolved file: exit = %d, stderr:\n%s", code, stderr.String())
	}

	stderr.Reset()
	todo := writeFile(t, dir, "todo.cc", gcdInput)
	if code := Check(context.Background(), opts, todo, &stderr); code != 4 {
		t.Errorf("unresolved file: exit = %d, want 4", code)
	}
	want := todo + `:1:1: ERROR CHK4001: not resolved: expected "#include <algorithm>" here`
	if !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}

	stderr.Reset()
	if code := Check(context.Background(), opts, filepath.Join(dir, "nope.cc"), &stderr); code != 3 {
		t.Errorf("missing file: exit = %d, want 3", code)
	}
}

func TestFirstDifference(t *testing.T) {
	tests := []struct {
		a, b []string
		want int
	}{
		{[]string{"a", "b"}, []string{"a", "b"}, -1},
		{[]string{"a", "b"}, []string{"a", "c"}, 1},
		{[]string{"a"}, []string{"a", "b"}, 1},
		{nil, nil, -1},
	}
	for _, tt := range tests {
		if got := firstDifference(tt.a, tt.b); got != tt.want {
			t.Errorf("firstDifference(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestUnits(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.cc", gcdOutput)
	res, err := Units(p)
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	var kws []string
	for _, u := range res.Units {
		kws = append(kws, u.Keyword)
	}
	want := []string{"#include <algorithm>", "#include <cstdio>", "using namespace std;", "Gcd(", "main("}
	if diff := cmp.Diff(want, kws); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}

	bad := writeFile(t, t.TempDir(), "bad.cc", "/* open\n")
	if _, err := Units(bad); err == nil || !strings.Contains(err.Error(), "bad.cc:1:1") {
		t.Errorf("Units(bad) error = %v", err)
	}
}
