package rules

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"badnames/internal/diag"
	"badnames/internal/syntax"
)

const (
	maxMethodNameLen   = 15
	maxVariableNameLen = 15
	minVariableNameLen = 3
	maxClassNameLen    = 20
	minClassTextLen    = 3
)

// placeholder names are matched case-sensitively.
var badNames = map[string]struct{}{
	"foo":  {},
	"bar":  {},
	"test": {},
}

// nameLen counts characters of the NFC form, so a precomposed and a
// decomposed spelling of the same name measure the same.
func nameLen(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// checkName is shared by identifiers and method invocations.
func checkName(n *syntax.Node, name string) Outcome {
	if _, bad := badNames[name]; bad {
		return Match(diag.NewWarning(diag.BadIdentifierName, n, fmt.Sprintf("%s is a bad identifier name", name)))
	}
	return NoMatch()
}

func checkIdentifier(n *syntax.Node) (Outcome, error) {
	return checkName(n, n.Name), nil
}

// calleeName resolves the simple name a call targets.
func calleeName(n *syntax.Node) (string, error) {
	if n.Callee != nil {
		switch n.Callee.Form {
		case syntax.CalleeMember, syntax.CalleeName:
			return n.Callee.Name, nil
		}
	}
	return "", malformed(n, fmt.Sprintf("Method name %s is malformed.", n.Text))
}

func checkInvocation(n *syntax.Node) (Outcome, error) {
	name, err := calleeName(n)
	if err != nil {
		return NoMatch(), err
	}
	return checkName(n, name), nil
}

func checkMethodName(n *syntax.Node) (Outcome, error) {
	if nameLen(n.Name) > maxMethodNameLen {
		return Match(diag.NewWarning(diag.LongMethodName, n,
			fmt.Sprintf("%s is too long for a method name, shame on you", n.Name))), nil
	}
	return NoMatch(), nil
}

func checkLongVariable(n *syntax.Node) (Outcome, error) {
	if nameLen(n.Name) > maxVariableNameLen {
		return Match(diag.NewWarning(diag.LongVariableName, n,
			fmt.Sprintf("Variable name is too long: %s", n.Name))), nil
	}
	return NoMatch(), nil
}

func checkShortVariable(n *syntax.Node) (Outcome, error) {
	if nameLen(n.Name) < minVariableNameLen {
		return Match(diag.NewWarning(diag.ShortVariableName, n,
			fmt.Sprintf("Make your variable name more descriptive: %s", n.Name))), nil
	}
	return NoMatch(), nil
}

func checkLongClass(n *syntax.Node) (Outcome, error) {
	if nameLen(n.Name) > maxClassNameLen {
		return Match(diag.NewWarning(diag.LongClassName, n,
			fmt.Sprintf("Class name is too long: %s", n.Name))), nil
	}
	return NoMatch(), nil
}

// checkTerseClass measures the rendered declaration, not the name. A real
// declaration cannot render to fewer than three characters, so only
// synthetic trees reach this branch.
func checkTerseClass(n *syntax.Node) (Outcome, error) {
	if nameLen(n.Text) < minClassTextLen {
		return Match(diag.NewWarning(diag.TerseClassDecl, n,
			fmt.Sprintf("Make your class name more descriptive: %s", n.Name))), nil
	}
	return NoMatch(), nil
}
