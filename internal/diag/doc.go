// Package diag defines the error model shared by the scanner, the library
// loader and the resolver.
//
// # Data model
//
// Error is the only record. It carries:
//
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as PARSE1002.
//   - File and Pos – where the problem was found. Pos is 0-based and refers to
//     the trimmed line sequence, not to raw bytes.
//   - Msg – short human oriented text.
//
// Codes are grouped in ranges; the range decides the Category and thereby the
// process exit status:
//
//   - 1xxx parse failures (unclosed comment/string/bracket, malformed
//     declarations) – exit 1;
//   - 2xxx input contract violations (missing namespace marker) – exit 2;
//   - 3xxx I/O failures – exit 3;
//   - 4xxx check failures from `splice check` – exit 4.
//
// Every Error is fatal: there is no recovery or retry path. Rendering lives in
// internal/diagfmt and the echo-on-failure behaviour lives in internal/driver.
package diag
