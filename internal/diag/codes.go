package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the catch-all for unclassified findings.
	UnknownCode Code = 0

	// Fixture / input loading (1000-1999)
	FixInfo          Code = 1000
	FixBadLiteral    Code = 1001
	FixUnknownType   Code = 1002
	FixUnknownCallee Code = 1003

	// Class declaration checks (2000-2999)
	DataInfo                     Code = 2000
	DataDefaultOrderingViolation Code = 2001
	DataDuplicateFieldName       Code = 2002

	// Call-site binding checks (3000-3999)
	CallInfo                    Code = 3000
	CallTooManyArguments        Code = 3001
	CallUnknownKeywordArgument  Code = 3002
	CallDuplicateArgument       Code = 3003
	CallMissingRequiredArgument Code = 3004
	CallArgumentTypeMismatch    Code = 3005

	// IO / infrastructure (4000-4999)
	IOInfo     Code = 4000
	IOReadFail Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	FixInfo:          "fixture info",
	FixBadLiteral:    "fixture literal cannot be classified",
	FixUnknownType:   "fixture names an unknown type annotation",
	FixUnknownCallee: "call references a class that is not declared",

	DataInfo:                     "class declaration info",
	DataDefaultOrderingViolation: "field without default follows a field with a default",
	DataDuplicateFieldName:       "field name is declared more than once",

	CallInfo:                    "call-site info",
	CallTooManyArguments:        "positional arguments exceed the parameter count",
	CallUnknownKeywordArgument:  "keyword argument matches no parameter",
	CallDuplicateArgument:       "argument bound more than once",
	CallMissingRequiredArgument: "required parameter left unbound",
	CallArgumentTypeMismatch:    "argument type is not assignable to the parameter type",

	IOInfo:     "io info",
	IOReadFail: "failed to read input",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FIX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DCL%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CAL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
