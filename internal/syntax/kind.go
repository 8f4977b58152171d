package syntax

// Kind is the closed set of node kinds the checker understands.
type Kind uint8

const (
	KindOther Kind = iota
	KindIdentifier
	KindMethodInvocation
	KindMethodDecl
	KindVariableDecl
	KindClassDecl
	KindIfStmt
	KindWhileLoop
	KindReturnStmt
	KindSwitchStmt

	kindCount
)

// NumKinds is the number of defined kinds; valid kinds are < NumKinds.
const NumKinds = int(kindCount)

var kindNames = [kindCount]string{
	KindOther:            "other",
	KindIdentifier:       "identifier",
	KindMethodInvocation: "method-invocation",
	KindMethodDecl:       "method-decl",
	KindVariableDecl:     "variable-decl",
	KindClassDecl:        "class-decl",
	KindIfStmt:           "if",
	KindWhileLoop:        "while",
	KindReturnStmt:       "return",
	KindSwitchStmt:       "switch",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// ParseKind maps the textual name of a kind back to Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindOther, false
}

// AllKinds returns every defined kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}
