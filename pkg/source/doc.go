// Package source turns files and strings into checkable sources.
//
// Text flows through a chain of decorators: a reader produces the raw text,
// preprocessors each wrap the previous link, and a Source sits on top. Tree
// bearing sources parse the fully decorated text once, on first use, and
// keep the outcome for their lifetime. A parse failure is recorded rather
// than returned so text level rules can still examine the file.
//
// A Factory maps file extensions to pipes describing which language and
// preprocessors handle them.
package source
