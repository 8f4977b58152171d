package rules

import (
	"fmt"

	"badnames/internal/diag"
	"badnames/internal/syntax"
)

// Conditions are compared as text. "1 == 2" or "(false)" are not recognised.
const falseLiteral = "false"

const nullLiteral = "null"

func checkDeadIf(n *syntax.Node) (Outcome, error) {
	if n.CondText == falseLiteral {
		return Match(diag.NewWarning(diag.DeadIfBranch, n, fmt.Sprintf("Dead code: %s", n.Text))), nil
	}
	return NoMatch(), nil
}

func checkIfWithoutElse(n *syntax.Node) (Outcome, error) {
	if !n.HasElse {
		return Match(diag.NewWarning(diag.IfWithoutElse, n, "Found an if without an else")), nil
	}
	return NoMatch(), nil
}

func checkFalseWhile(n *syntax.Node) (Outcome, error) {
	if n.CondText == falseLiteral {
		return Match(diag.NewWarning(diag.InfiniteWhileLoop, n, fmt.Sprintf("Infinite loop: %s", n.Text))), nil
	}
	return NoMatch(), nil
}

// checkReturnNull compares the whole rendering, so "return null;" does not match.
func checkReturnNull(n *syntax.Node) (Outcome, error) {
	if n.Text == nullLiteral {
		return Match(diag.NewWarning(diag.ReturnNull, n, fmt.Sprintf("Try not to return null: %s", n.Text))), nil
	}
	return NoMatch(), nil
}

func checkEmptySwitch(n *syntax.Node) (Outcome, error) {
	if n.CaseCount == 0 {
		return Match(diag.NewWarning(diag.EmptySwitch, n, fmt.Sprintf("Empty switch statement: %s", n.Text))), nil
	}
	return NoMatch(), nil
}
