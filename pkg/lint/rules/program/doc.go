// Package program provides rules which examine the Fortran parse tree.
//
// Every rule here is a lint.FortranChecker wrapped by lint.NewFortranRule, so
// sources which fail to parse produce a single "Unable to perform" issue
// instead of running the checker.
//
// Rules in this package:
//   - MissingImplicit: program units without an IMPLICIT statement
//   - MissingOnly: USE statements without an ONLY clause
//   - IntrinsicModule: intrinsic modules used without the INTRINSIC nature
//   - MissingPointerInit: pointers declared without initialisation
//   - MissingIntent: dummy arguments declared without an intent
//   - LabelledDoExit: EXIT statements which do not name their DO construct
//   - ForbidUsage: USE of a module outside the program units allowed it
//   - KindPattern: integer and real kinds not matching a naming pattern
//   - AutoCharArrayIntent: assumed length character arguments not intent IN
//   - NakedLiteral: numeric literals assigned without a kind
package program
