// Package text provides rules which work on the raw source text of any
// language, without needing a parse tree.
//
// Rules in this package:
//   - FortranCharacterset: characters outside the Fortran character set in code
//   - TrailingWhitespace: white space at the end of lines
//   - LimitLineLength: lines longer than a limit
package text
