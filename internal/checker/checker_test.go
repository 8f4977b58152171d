package checker

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"badnames/internal/diag"
	"badnames/internal/rules"
	"badnames/internal/syntax"
)

func TestEvaluateDispatchesByKind(t *testing.T) {
	c := New(nil)
	tests := []struct {
		name string
		node *syntax.Node
		code diag.Code // UnknownCode means no match
	}{
		{"identifier", &syntax.Node{Kind: syntax.KindIdentifier, Name: "bar"}, diag.BadIdentifierName},
		{"call", &syntax.Node{Kind: syntax.KindMethodInvocation, Callee: &syntax.Callee{Form: syntax.CalleeName, Name: "test"}}, diag.BadIdentifierName},
		{"method", &syntax.Node{Kind: syntax.KindMethodDecl, Name: "handleEverythingNow"}, diag.LongMethodName},
		{"variable", &syntax.Node{Kind: syntax.KindVariableDecl, Name: "i"}, diag.ShortVariableName},
		{"class", &syntax.Node{Kind: syntax.KindClassDecl, Name: "AbstractSingletonProxyFactoryBean", Text: "class AbstractSingletonProxyFactoryBean {}"}, diag.LongClassName},
		{"if", &syntax.Node{Kind: syntax.KindIfStmt, CondText: "ready"}, diag.IfWithoutElse},
		{"while", &syntax.Node{Kind: syntax.KindWhileLoop, CondText: "false"}, diag.InfiniteWhileLoop},
		{"return", &syntax.Node{Kind: syntax.KindReturnStmt, Text: "null"}, diag.ReturnNull},
		{"switch", &syntax.Node{Kind: syntax.KindSwitchStmt}, diag.EmptySwitch},
		{"other", &syntax.Node{Kind: syntax.KindOther, Name: "foo", Text: "null"}, diag.UnknownCode},
		// name fields are ignored by kinds that do not read them
		{"if named foo", &syntax.Node{Kind: syntax.KindIfStmt, Name: "foo", CondText: "x", HasElse: true}, diag.UnknownCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Evaluate(tt.node)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			d, ok := out.Diagnostic()
			if tt.code == diag.UnknownCode {
				if ok {
					t.Fatalf("unexpected match %s", d.Code.ID())
				}
				return
			}
			if !ok || d.Code != tt.code {
				t.Fatalf("got %v (matched=%v), want %s", d.Code.ID(), ok, tt.code.ID())
			}
		})
	}
}

func TestEvaluateFirstMatchWins(t *testing.T) {
	// both if-rules would fire independently; only the first is reported
	c := New(nil)
	out, err := c.Evaluate(&syntax.Node{Kind: syntax.KindIfStmt, CondText: "false", HasElse: false, Text: "if false {}"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	d, ok := out.Diagnostic()
	if !ok || d.Code != diag.DeadIfBranch {
		t.Fatalf("got %+v, want dead-code diagnostic", d)
	}
}

func TestEvaluateStopsChainOnMatch(t *testing.T) {
	var calls []string
	record := func(name string, match bool) rules.Rule {
		return rules.Rule{Code: diag.UnknownCode, Name: name, Check: func(n *syntax.Node) (rules.Outcome, error) {
			calls = append(calls, name)
			if match {
				return rules.Match(diag.NewWarning(diag.UnknownCode, n, name)), nil
			}
			return rules.NoMatch(), nil
		}}
	}
	table := rules.NewTable().Register(syntax.KindReturnStmt, record("a", false), record("b", true), record("c", true))
	c := New(table)

	out, err := c.Evaluate(&syntax.Node{Kind: syntax.KindReturnStmt})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if d, _ := out.Diagnostic(); d.Message != "b" {
		t.Fatalf("winning rule = %q, want b", d.Message)
	}
	if !slices.Equal(calls, []string{"a", "b"}) {
		t.Fatalf("calls = %v, want [a b]", calls)
	}
}

func TestEvaluateMalformed(t *testing.T) {
	c := New(nil)
	call := &syntax.Node{ID: 5, Kind: syntax.KindMethodInvocation, Text: "handlers[i]()",
		Callee: &syntax.Callee{Form: syntax.CalleeUnknown, Text: "handlers[i]"}}
	out, err := c.Evaluate(call)
	if !errors.Is(err, rules.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
	if out.Matched() {
		t.Fatalf("malformed input produced a diagnostic")
	}

	if _, err := c.Evaluate(nil); !errors.Is(err, rules.ErrMalformedInput) {
		t.Fatalf("nil node: expected malformed input, got %v", err)
	}
	if _, err := c.Evaluate(&syntax.Node{Kind: syntax.Kind(99)}); !errors.Is(err, rules.ErrMalformedInput) {
		t.Fatalf("unknown kind: expected malformed input, got %v", err)
	}
}

func TestKindsAndWants(t *testing.T) {
	c := New(nil)
	if c.Wants(syntax.KindOther) {
		t.Fatalf("checker must not want other nodes")
	}
	for _, k := range c.Kinds() {
		if !c.Wants(k) {
			t.Errorf("Kinds lists %s but Wants is false", k)
		}
	}
	if c.Wants(syntax.Kind(42)) {
		t.Fatalf("Wants(42) must be false")
	}

	narrow := New(rules.NewTable().Register(syntax.KindSwitchStmt, rules.EmptySwitch))
	if got := narrow.Kinds(); !slices.Equal(got, []syntax.Kind{syntax.KindSwitchStmt}) {
		t.Fatalf("narrow Kinds = %v", got)
	}
	if narrow.Fingerprint() == c.Fingerprint() {
		t.Fatalf("different rule sets share a fingerprint")
	}
	if New(nil).Fingerprint() != c.Fingerprint() {
		t.Fatalf("fingerprint is not stable")
	}
}

func TestExtendWithNewRule(t *testing.T) {
	table := rules.Default().Register(syntax.KindIdentifier, rules.Rule{
		Code: diag.UnknownCode,
		Name: "no-baz",
		Check: func(n *syntax.Node) (rules.Outcome, error) {
			if n.Name == "baz" {
				return rules.Match(diag.NewWarning(diag.UnknownCode, n, "baz")), nil
			}
			return rules.NoMatch(), nil
		},
	})
	c := New(table)
	out, _ := c.Evaluate(&syntax.Node{Kind: syntax.KindIdentifier, Name: "baz"})
	if !out.Matched() {
		t.Fatalf("registered rule was not consulted")
	}
	out, _ = c.Evaluate(&syntax.Node{Kind: syntax.KindIdentifier, Name: "foo"})
	if d, _ := out.Diagnostic(); d.Code != diag.BadIdentifierName {
		t.Fatalf("built-in rule lost priority: %+v", d)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	c := New(nil)
	nodes := []*syntax.Node{
		{Kind: syntax.KindIdentifier, Name: "foo"},
		{Kind: syntax.KindVariableDecl, Name: "ok"},
		{Kind: syntax.KindSwitchStmt, CaseCount: 2},
	}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				for _, n := range nodes {
					if _, err := c.Evaluate(n); err != nil {
						t.Errorf("Evaluate: %v", err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
