package diagfmt

import (
	"encoding/json"
	"io"
	"slices"

	"badnames/internal/diag"
	"badnames/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string            `json:"arguments,omitempty"`
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
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
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevInfo:
		return "note"
	default:
		return "warning"
	}
}

func sarifLocationOf(span source.Span, fs *source.FileSet) sarifLocation {
	loc := sarifLocation{}
	if f := fs.Get(span.File); f != nil {
		loc.PhysicalLocation.ArtifactLocation.URI = formatPath(f, fs, PathModeRelative)
		start, end := fs.Resolve(span)
		loc.PhysicalLocation.Region = &sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
			ByteOffset:  span.Start,
			ByteLength:  span.Len(),
		}
	}
	return loc
}

// Sarif форматирует диагностики в SARIF (v2.1.0). Analysis errors become
// tool execution notifications.
func Sarif(w io.Writer, diags []diag.Diagnostic, errs []AnalysisError, fs *source.FileSet, meta SarifRunMeta) error {
	var codes []diag.Code
	results := make([]sarifResult, 0, len(diags))
	for _, d := range diags {
		if !slices.Contains(codes, d.Code) {
			codes = append(codes, d.Code)
		}
		results = append(results, sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: diag.SanitizeMessage(d.Message)},
			Locations: []sarifLocation{sarifLocationOf(d.Primary, fs)},
		})
	}
	slices.Sort(codes)
	rules := make([]sarifRule, 0, len(codes))
	for _, c := range codes {
		rules = append(rules, sarifRule{ID: c.ID(), ShortDescription: sarifMessage{Text: c.Title()}})
	}

	inv := sarifInvocation{Arguments: meta.InvocationArgs, ExecutionSuccessful: len(errs) == 0}
	for _, e := range errs {
		n := sarifNotification{Level: "error", Message: sarifMessage{Text: e.Phase + ": " + diag.SanitizeMessage(e.Message)}}
		if e.HasSpan && fs.Get(e.Span.File) != nil {
			n.Locations = []sarifLocation{sarifLocationOf(e.Span, fs)}
		} else {
			n.Locations = []sarifLocation{{PhysicalLocation: sarifPhysical{ArtifactLocation: sarifArtifact{URI: e.Path}}}}
		}
		inv.Notifications = append(inv.Notifications, n)
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           meta.ToolName,
				Version:        meta.ToolVersion,
				InformationURI: meta.InformationURI,
				Rules:          rules,
			}},
			Invocations: []sarifInvocation{inv},
			Results:     results,
		}},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}
