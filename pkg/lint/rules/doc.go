// Package rules provides the built-in style rules for stylist.
//
// Rules are organized by what they examine:
//   - text: rules reading the raw source text line by line
//     (FortranCharacterset, TrailingWhitespace, LimitLineLength)
//   - program: rules walking the Fortran parse tree
//     (MissingImplicit, MissingOnly, IntrinsicModule, MissingPointerInit,
//     MissingIntent, LabelledDoExit, ForbidUsage, KindPattern,
//     AutoCharArrayIntent, NakedLiteral)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/stylist/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/stylist/pkg/lint/rules/text"
package rules
