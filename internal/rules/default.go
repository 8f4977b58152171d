package rules

import (
	"badnames/internal/diag"
	"badnames/internal/syntax"
)

// Built-in rules.
var (
	BadIdentifier = Rule{
		Code:    diag.BadIdentifierName,
		Name:    "bad-identifier",
		Summary: "identifier is one of foo, bar, test",
		Check:   checkIdentifier,
	}
	BadCallee = Rule{
		Code:    diag.BadIdentifierName,
		Name:    "bad-callee",
		Summary: "called method is named foo, bar or test",
		Check:   checkInvocation,
	}
	LongMethodName = Rule{
		Code:    diag.LongMethodName,
		Name:    "long-method-name",
		Summary: "method name longer than 15 characters",
		Check:   checkMethodName,
	}
	LongVariableName = Rule{
		Code:    diag.LongVariableName,
		Name:    "long-variable-name",
		Summary: "variable name longer than 15 characters",
		Check:   checkLongVariable,
	}
	ShortVariableName = Rule{
		Code:    diag.ShortVariableName,
		Name:    "short-variable-name",
		Summary: "variable name shorter than 3 characters",
		Check:   checkShortVariable,
	}
	LongClassName = Rule{
		Code:    diag.LongClassName,
		Name:    "long-class-name",
		Summary: "class name longer than 20 characters",
		Check:   checkLongClass,
	}
	TerseClassDecl = Rule{
		Code:    diag.TerseClassDecl,
		Name:    "terse-class-decl",
		Summary: "class declaration renders to fewer than 3 characters",
		Check:   checkTerseClass,
	}
	DeadIf = Rule{
		Code:    diag.DeadIfBranch,
		Name:    "dead-if",
		Summary: "if condition is the literal false",
		Check:   checkDeadIf,
	}
	IfWithoutElse = Rule{
		Code:    diag.IfWithoutElse,
		Name:    "if-without-else",
		Summary: "if statement has no else branch",
		Check:   checkIfWithoutElse,
	}
	FalseWhile = Rule{
		Code:    diag.InfiniteWhileLoop,
		Name:    "false-while",
		Summary: "while condition is the literal false",
		Check:   checkFalseWhile,
	}
	ReturnNull = Rule{
		Code:    diag.ReturnNull,
		Name:    "return-null",
		Summary: "return statement renders as null",
		Check:   checkReturnNull,
	}
	EmptySwitch = Rule{
		Code:    diag.EmptySwitch,
		Name:    "empty-switch",
		Summary: "switch statement has no cases",
		Check:   checkEmptySwitch,
	}
)

// Default returns a fresh table with the built-in rule set.
func Default() *Table {
	t := NewTable()
	t.Register(syntax.KindIdentifier, BadIdentifier)
	t.Register(syntax.KindMethodInvocation, BadCallee)
	t.Register(syntax.KindMethodDecl, LongMethodName)
	t.Register(syntax.KindVariableDecl, LongVariableName, ShortVariableName)
	t.Register(syntax.KindClassDecl, LongClassName, TerseClassDecl)
	t.Register(syntax.KindIfStmt, DeadIf, IfWithoutElse)
	t.Register(syntax.KindWhileLoop, FalseWhile)
	t.Register(syntax.KindReturnStmt, ReturnNull)
	t.Register(syntax.KindSwitchStmt, EmptySwitch)
	return t
}
