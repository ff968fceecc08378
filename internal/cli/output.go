package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/mkravets/upkeep/internal/forms"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintTemplates outputs templates in the specified format
func PrintTemplates(templates []forms.Template, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(templates)
	case FormatYAML:
		return printYAML(templates)
	case FormatTable:
		return printTemplateTable(templates)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintTemplate outputs a single template in the specified format
func PrintTemplate(t *forms.Template, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(t)
	case FormatYAML:
		return printYAML(t)
	case FormatTable:
		return printTemplateTable([]forms.Template{*t})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintSubmissions outputs submissions in the specified format
func PrintSubmissions(subs []forms.Submission, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(subs)
	case FormatYAML:
		return printYAML(subs)
	case FormatTable:
		return printSubmissionTable(subs)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	// Wrap template slices in a "templates" key for consistency with the API
	if templates, ok := data.([]forms.Template); ok {
		return encoder.Encode(map[string][]forms.Template{"templates": templates})
	}
	return encoder.Encode(data)
}

func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printTemplateTable(templates []forms.Template) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("ID", "Name", "Fields", "Conditions", "Version", "Updated At")

	for _, t := range templates {
		name := t.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}

		table.Append(
			t.ID,
			name,
			strconv.Itoa(len(t.Fields)),
			strconv.Itoa(len(t.Conditions)),
			strconv.Itoa(t.Version),
			t.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}

	return table.Render()
}

func printSubmissionTable(subs []forms.Submission) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("ID", "Template", "Submitted By", "Values", "Created At")

	for _, s := range subs {
		table.Append(
			s.ID,
			s.TemplateID,
			s.SubmittedBy,
			strconv.Itoa(len(s.Values)),
			s.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	return table.Render()
}
