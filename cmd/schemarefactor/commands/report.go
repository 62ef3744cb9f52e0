package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/bfv/schemarefactor/internal/rewrite"
)

// reportEntry is the serialized form of one change record. Count is
// omitted for presence-checked rules, which report the description
// alone.
type reportEntry struct {
	Description string `yaml:"description"`
	Count       int    `yaml:"count,omitempty"`
}

// reportDoc is the machine-readable change report for one schema.
type reportDoc struct {
	Schema  string        `yaml:"schema"`
	Changes []reportEntry `yaml:"changes"`
}

// writeReport renders one document's change report to w.
func writeReport(w io.Writer, format, path string, changes []rewrite.Change) error {
	switch format {
	case "yaml":
		return writeYAML(w, path, changes)
	case "text", "":
		writeText(w, path, changes)
		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeYAML(w io.Writer, path string, changes []rewrite.Change) error {
	doc := reportDoc{Schema: path, Changes: []reportEntry{}}
	for _, c := range changes {
		entry := reportEntry{Description: c.Description}
		if c.Counted {
			entry.Count = c.Count
		}
		doc.Changes = append(doc.Changes, entry)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshalling yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// writeText renders the report as a fixed-column checklist, one line
// per change, with occurrence counts right-aligned for count-checked
// rules.
func writeText(w io.Writer, path string, changes []rewrite.Change) {
	if len(changes) == 0 {
		fmt.Fprintf(w, "%s: no changes (schema already migrated)\n", path)
		return
	}
	fmt.Fprintf(w, "%s: %d change%s\n", path, len(changes), plural(len(changes)))

	// Determine the description column width dynamically.
	width := 0
	for _, c := range changes {
		if len(c.Description) > width {
			width = len(c.Description)
		}
	}
	width += 2

	check := color.New(color.FgGreen).Sprint("✓")
	for _, c := range changes {
		if c.Counted {
			fmt.Fprintf(w, "  %s %-*s%dx\n", check, width, c.Description, c.Count)
		} else {
			fmt.Fprintf(w, "  %s %s\n", check, c.Description)
		}
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
