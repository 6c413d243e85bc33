// Package lint provides the rule, style and engine framework of stylist.
//
// # Architecture
//
// Checking happens in three layers:
//
//  1. Rule: examines one source and returns issues (pkg/lint/rules holds the built in rules)
//  2. Style: a named, ordered list of rules whose issues are concatenated
//  3. Engine: reads files through a source.Factory, applies every style and sorts the result
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their package is imported:
//
//	import _ "github.com/leapstack-labs/stylist/pkg/lint/rules"
//
// # Using the Registry
//
//	specs := lint.AllRules()
//	spec, ok := lint.LookupRule("MissingImplicit")
//	rule, err := lint.NewRule("LimitLineLength", map[string]any{"length": 100}, logger)
//
// # Styles
//
// Styles are usually built from configuration:
//
//	style, err := lint.BuildStyle("strict", lint.StyleConfig{
//		Rules: []lint.RuleConfig{{Name: "FortranCharacterset"}, {Name: "MissingImplicit"}},
//	}, logger)
//
// Rules may also be given in the short form "LimitLineLength(100, true)" where
// positional arguments map onto the rule's ConfigKeys; see ParseRuleDescription.
//
// # Creating Custom Rules
//
// Text rules embed Base and call its Examine first:
//
//	type myRule struct{ lint.Base }
//
//	func (r *myRule) Examine(src source.Source) ([]lint.Issue, error) {
//		issues, err := r.Base.Examine(src)
//		...
//	}
//
// Rules which need the Fortran parse tree implement FortranChecker and are
// wrapped with NewFortranRule, which takes care of rejecting other languages
// and of reporting sources which failed to parse.
//
// # Errors
//
// Issues are findings about the code. Errors abort the run: a rule handed the
// wrong kind of source (ErrWrongSource), an unknown grammar kind, an unknown
// rule or style, and I/O failures all surface to the caller.
package lint
