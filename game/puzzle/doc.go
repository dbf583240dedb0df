// Package puzzle manages the library of puzzle definition files.
//
// A Manager loads JSON definitions from a puzzle directory, validates them,
// caches them by name, and can list and save definitions. The shipped
// "classic" puzzle is used as the default; when the directory holds no
// usable definitions a built-in copy of the classic board is used instead.
package puzzle
