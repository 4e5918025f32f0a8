// Package rules provides the built-in lint rules for headcheck.
//
//   - HC001: no-multiple-toplevel-headings - a document has at most one
//     heading at the reference depth (option "depth", default 1).
//     Aliases: single-h1, single-title, MD025.
//
// Rules register themselves with lint.DefaultRegistry on import.
package rules
