package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool          `json:"tool"`
	Invocations []sarifInvocation  `json:"invocations,omitempty"`
	Results     []sarifResult      `json:"results"`
	Artifacts   []sarifArtifactRef `json:"artifacts,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	CommandLine string `json:"commandLine,omitempty"`
	ExecutionOK bool   `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactRef `json:"artifactLocation"`
	Region           sarifRegion      `json:"region"`
}

type sarifArtifactRef struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

// Sarif writes the bag as a SARIF 2.1.0 log with one run. Rules are the
// distinct codes present in the bag.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	displays := diag.InstantiateAll(fs, bag, "relative", fs.BaseDir())

	seen := make(map[string]bool)
	results := make([]sarifResult, 0, len(displays))
	for _, d := range displays {
		seen[d.Name] = true
		results = append(results, sarifResult{
			RuleID:  d.Name,
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Description},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactRef{URI: d.Path},
					Region: sarifRegion{
						StartLine:   d.Line,
						StartColumn: d.Col,
						EndLine:     d.StopLine,
						EndColumn:   d.StopCol,
					},
				},
			}},
		})
	}

	rules := make([]sarifRule, 0, len(seen))
	for id := range seen {
		rules = append(rules, sarifRule{ID: id, ShortDescription: sarifMessage{Text: id}})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion, Rules: rules}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			CommandLine: joinArgs(meta.InvocationArgs),
			ExecutionOK: !bag.HasErrors(),
		}}
	}

	log := sarifLog{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func sarifLevel(severity string) string {
	switch severity {
	case "error":
		return "error"
	case "warning":
		return "warning"
	default:
		return "note"
	}
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}
