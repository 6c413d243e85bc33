package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/leapstack-labs/stylist/internal/cli/config"
	"gopkg.in/yaml.v3"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// getConfigSchema mirrors the keys read by internal/cli/config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "verbose", Type: "bool", Default: "false", Description: "Report progress and always print the issue summary"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text or json"},
		{Name: "workers", Type: "int", Default: fmt.Sprint(config.DefaultWorkers), Description: "Files checked concurrently, 0 for one per CPU"},
		{Name: "file_pipes", Type: "map[string]string", Description: "Extension to `language[:preprocessor...]` pipes added to the built in map"},
		{Name: "styles", Type: "map[string]style", Description: "Named styles, each a description and a list of rules"},
	}
}

// generateConfigDocs writes the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "stylist configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("stylist reads `stylist.yaml` (or `stylist.yml`) from the working directory or the nearest parent holding one.")

	var rows [][]string
	for _, f := range getConfigSchema() {
		def := "-"
		if f.Default != "" {
			def = InlineCode(f.Default)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, def, f.Description})
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, rows)

	w.Header(2, "Default File Pipes")
	pipes := config.DefaultFilePipes()
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

	w.Header(2, "Default Style")
	w.Paragraph("Used when the configuration names no style at all:")
	body, err := yaml.Marshal(map[string]any{"styles": config.DefaultStyles()})
	if err != nil {
		return fmt.Errorf("failed to encode default style: %w", err)
	}
	w.CodeBlock("yaml", string(body))

	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
