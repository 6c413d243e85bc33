package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/stylist/internal/cli"
	"github.com/leapstack-labs/stylist/internal/cli/config"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs generates CLI documentation from Cobra commands.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Get root command
	rootCmd := cli.NewRootCmd()

	// Generate index page
	if err := generateCLIIndex(rootCmd, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	// Generate page for each command
	for _, cmd := range rootCmd.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

// generateCLIIndex generates the CLI overview page.
func generateCLIIndex(rootCmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for stylist")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("stylist checks source trees against the styles configured in `stylist.yaml`.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/stylist/cmd/stylist@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "stylist <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range rootCmd.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key may be set with a `STYLIST_` prefixed variable:")
	w.Table([]string{"Variable", "Description"}, [][]string{
		{InlineCode("STYLIST_VERBOSE"), "Report progress and the issue summary"},
		{InlineCode("STYLIST_OUTPUT"), "Output format"},
		{InlineCode("STYLIST_WORKERS"), "Files checked concurrently"},
	})
	w.Paragraph("Command-line flags take precedence over environment variables, which take precedence over the configuration file.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No issues found"},
		{InlineCode("1"), "Issues found, or an error (check stderr for details)"},
	})

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateCommandPage generates documentation for a single command.
func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	// Frontmatter
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	// Title and long description
	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	// Usage
	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if cmd.HasSubCommands() {
		useLine = fmt.Sprintf("stylist %s <subcommand> [options]", cmd.Name())
	} else if !strings.HasPrefix(useLine, "stylist") {
		useLine = "stylist " + useLine
	}
	w.CodeBlock("bash", useLine)

	// Aliases
	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		var aliases []string
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	// Subcommands
	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		headers := []string{"Subcommand", "Description"}
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.Hidden {
				continue
			}
			rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
		}
		w.Table(headers, rows)
	}

	// Local flags
	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	// Inherited flags from parent
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	// Commands reading files describe how extensions pick a pipe
	if cmd.Flags().Lookup("map-extension") != nil {
		writeFilePipes(w)
	}

	// Examples
	if cmd.Example != "" {
		w.Header(2, "Examples")
		// Clean up example - remove common leading whitespace
		example := cleanExample(cmd.Example)
		w.CodeBlock("bash", example)
	}

	// Write file
	filename := filepath.Join(outDir, cmd.Name()+".md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// writeFilePipes documents the pipes a file is read through and the
// extension map --map-extension adds to.
func writeFilePipes(w *MarkdownWriter) {
	w.Header(2, "File Pipes")
	w.Paragraph("Each file is read through the pipe mapped to its extension: a source language, " +
		"optionally preceded by preprocessors which comment out directives the language cannot parse. " +
		"Extensions are case sensitive and files with an unmapped extension are skipped.")
	w.CodeBlock("text", "EXTENSION:LANGUAGE[:PREPROCESSOR]...")
	w.Paragraph("Use " + InlineCode("--map-extension") + " (repeatable) or the " + InlineCode("file_pipes") +
		" configuration key to add an extension or replace a default mapping.")

	w.Header(3, "Languages")
	w.Table([]string{"Language", "Checked as"}, [][]string{
		{InlineCode(source.LanguageFortran), "Fortran source, parsed for tree rules"},
		{InlineCode(source.LanguageC), "C source, text rules only"},
		{InlineCode(source.LanguageText), "Plain text lines"},
	})

	w.Header(3, "Preprocessors")
	var rows [][]string
	for _, tag := range source.ProcessorTags() {
		proc, err := source.NewProcessor(tag, source.NewStringReader(""))
		if err != nil {
			continue
		}
		rows = append(rows, []string{InlineCode(tag), proc.Name()})
	}
	w.Table([]string{"Tag", "Preprocessor"}, rows)

	w.Header(3, "Default Extensions")
	pipes := make(map[string]string)
	for ext, pipe := range source.DefaultPipes() {
		pipes[ext] = pipe.String()
	}
	for ext, pipe := range config.DefaultFilePipes() {
		pipes[ext] = pipe
	}
	exts := make([]string, 0, len(pipes))
	for ext := range pipes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	rows = rows[:0]
	for _, ext := range exts {
		rows = append(rows, []string{InlineCode(ext), InlineCode(pipes[ext])})
	}
	w.Table([]string{"Extension", "Pipe"}, rows)

	w.CodeBlock("bash", "stylist check --map-extension inc:fortran:fpp --map-extension pf:fortran:fpp:pfp src/")
}

// writeFlagsTable writes a table of flags.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	headers := []string{"Option", "Short", "Default", "Description"}
	var rows [][]string

	flags.VisitAll(func(f *pflag.Flag) {
		// Skip hidden flags
		if f.Hidden {
			return
		}

		option := "--" + f.Name
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}

		defVal := f.DefValue
		switch {
		case defVal == "":
			// Keep empty
		case defVal == "false" || defVal == "true":
			// Keep as-is for booleans
		case f.Value.Type() == "string" && defVal != "":
			defVal = InlineCode(defVal)
		}

		desc := cleanDescription(f.Usage)

		rows = append(rows, []string{
			InlineCode(option),
			short,
			defVal,
			desc,
		})
	})

	w.Table(headers, rows)
}

// cleanExample removes common leading whitespace from example text.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	if len(lines) == 0 {
		return example
	}

	// Find minimum indentation (ignoring empty lines)
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	// Remove common indentation
	var result []string
	for _, line := range lines {
		if len(line) >= minIndent {
			result = append(result, line[minIndent:])
		} else {
			result = append(result, strings.TrimLeft(line, " \t"))
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
