package diag

import (
	"fmt"
)

// Code is the stable identifier of the rule that produced a diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// Naming rules.
	BadIdentifierName Code = 1001
	LongMethodName    Code = 1002
	LongVariableName  Code = 1003
	ShortVariableName Code = 1004
	LongClassName     Code = 1005
	TerseClassDecl    Code = 1006

	// Control-flow rules.
	DeadIfBranch      Code = 1007
	IfWithoutElse     Code = 1008
	InfiniteWhileLoop Code = 1009
	ReturnNull        Code = 1010
	EmptySwitch       Code = 1011
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown diagnostic",
	BadIdentifierName: "identifier uses a placeholder name",
	LongMethodName:    "method name longer than 15 characters",
	LongVariableName:  "variable name longer than 15 characters",
	ShortVariableName: "variable name shorter than 3 characters",
	LongClassName:     "class name longer than 20 characters",
	TerseClassDecl:    "class declaration renders to fewer than 3 characters",
	DeadIfBranch:      "if condition is the literal false",
	IfWithoutElse:     "if statement without else branch",
	InfiniteWhileLoop: "while condition is the literal false",
	ReturnNull:        "return statement renders as null",
	EmptySwitch:       "switch statement without cases",
}

// ID returns the printable identifier, e.g. BN1001.
func (c Code) ID() string {
	if c == UnknownCode {
		return "BN0000"
	}
	return fmt.Sprintf("BN%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode maps an ID such as "BN1007" back to its Code.
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
