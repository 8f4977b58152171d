package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"badnames/internal/diag"
	"badnames/internal/source"
)

const sampleSrc = "package a\n\nfunc run() {\n\tfoo := 1\n}\n"

func sampleDiags(t *testing.T) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("/home/user/project/src/a.go", []byte(sampleSrc))
	fs.SetBaseDir("/home/user/project")
	start := uint32(strings.Index(sampleSrc, "foo"))
	return fs, []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.BadIdentifierName,
		Message:  "foo is a bad identifier name",
		Primary:  source.Span{File: id, Start: start, End: start + 3},
		Anchor:   9,
	}}
}

func TestPrettyPathModes(t *testing.T) {
	fs, diags := sampleDiags(t)
	bag := diag.NewBag(0)
	bag.Add(diags[0])

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/src/a.go:4:2: "},
		{PathModeRelative, "src/a.go:4:2: "},
		{PathModeBasename, "a.go:4:2: "},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode}); err != nil {
			t.Fatalf("Pretty: %v", err)
		}
		if !strings.HasPrefix(buf.String(), tt.want) {
			t.Errorf("mode %d: output %q does not start with %q", tt.mode, buf.String(), tt.want)
		}
	}
}

func TestPrettySnippet(t *testing.T) {
	fs, diags := sampleDiags(t)
	bag := diag.NewBag(0)
	bag.Add(diags[0])

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeRelative, Context: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "src/a.go:4:2: WARNING BN1001: foo is a bad identifier name\n" +
		"3 | func run() {\n" +
		"4 | \tfoo := 1\n" +
		"  | \t^~~\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrettyAnalysisErrors(t *testing.T) {
	fs, diags := sampleDiags(t)
	errs := []AnalysisError{
		{Path: "src/a.go", Span: diags[0].Primary, HasSpan: true, Phase: "check", Message: "Method name foo() is malformed."},
		{Path: "missing.go", Phase: "load", Message: "no such file"},
	}
	var buf bytes.Buffer
	if err := PrettyAnalysisErrors(&buf, errs, fs, PrettyOpts{PathMode: PathModeRelative}); err != nil {
		t.Fatalf("PrettyAnalysisErrors: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "src/a.go:4:2: ANALYSIS ERROR (check): Method name foo() is malformed.\n") {
		t.Errorf("missing located error in %q", out)
	}
	if !strings.HasSuffix(out, "missing.go: ANALYSIS ERROR (load): no such file\n") {
		t.Errorf("missing load error in %q", out)
	}
}

func TestJSON(t *testing.T) {
	fs, diags := sampleDiags(t)
	errs := []AnalysisError{{Path: "b.go", Phase: "parse", Message: "expected '('"}}
	var buf bytes.Buffer
	if err := JSON(&buf, diags, errs, fs, JSONOpts{IncludePositions: true, PathMode: PathModeRelative}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "BN1001" || d.Severity != "WARNING" || d.Node != 9 {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location.File != "src/a.go" || d.Location.StartLine != 4 || d.Location.StartCol != 2 || d.Location.EndCol != 5 {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(out.AnalysisErrors) != 1 || out.AnalysisErrors[0].File != "b.go" || out.AnalysisErrors[0].Location != nil {
		t.Fatalf("analysis errors = %+v", out.AnalysisErrors)
	}
}

func TestJSONMax(t *testing.T) {
	fs, diags := sampleDiags(t)
	diags = append(diags, diags[0], diags[0])
	out := BuildDiagnosticsOutput(diags, nil, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
}

func TestSarif(t *testing.T) {
	fs, diags := sampleDiags(t)
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "badnames", ToolVersion: "1.0.0", InvocationArgs: []string{"check", "."}}
	errs := []AnalysisError{{Path: "b.go", Phase: "parse", Message: "expected '('"}}
	if err := Sarif(&buf, diags, errs, fs, meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Invocations []struct {
				ExecutionSuccessful bool `json:"executionSuccessful"`
			} `json:"invocations"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid sarif: %v", err)
	}
	if doc.Version != "2.1.0" || len(doc.Runs) != 1 {
		t.Fatalf("doc = %+v", doc)
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "badnames" || len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "BN1001" {
		t.Fatalf("driver = %+v", run.Tool.Driver)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("invocations = %+v", run.Invocations)
	}
	r := run.Results[0]
	if r.RuleID != "BN1001" || r.Level != "warning" || r.Locations[0].PhysicalLocation.ArtifactLocation.URI != "src/a.go" || r.Locations[0].PhysicalLocation.Region.StartLine != 4 {
		t.Fatalf("result = %+v", r)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("SARIF"); err != nil || f != FormatSarif {
		t.Fatalf("ParseFormat(SARIF) = %v, %v", f, err)
	}
	if f, _ := ParseFormat(""); f != FormatPretty {
		t.Fatalf("default format = %v", f)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error")
	}
}
