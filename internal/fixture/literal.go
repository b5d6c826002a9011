package fixture

import (
	"strconv"
	"strings"

	"datacheck/internal/ast"
	"datacheck/internal/types"
)

// classifyLiteral maps a fixture literal text onto a primitive type:
// quoted text is str, digits are int, a decimal point makes float,
// true/false are bool, None is None. Anything else is unclassifiable.
func classifyLiteral(in *types.Interner, text string) (types.TypeID, bool) {
	b := in.Builtins()
	t := strings.TrimSpace(text)
	if t == "" {
		return types.NoTypeID, false
	}

	if len(t) >= 2 {
		if (t[0] == '\'' && t[len(t)-1] == '\'') || (t[0] == '"' && t[len(t)-1] == '"') {
			return b.Str, true
		}
	}
	switch t {
	case "true", "false", "True", "False":
		return b.Bool, true
	case "None":
		return b.None, true
	}
	if _, err := strconv.ParseInt(t, 10, 64); err == nil {
		return b.Int, true
	}
	if _, err := strconv.ParseFloat(t, 64); err == nil {
		return b.Float, true
	}
	return types.NoTypeID, false
}

// ResolveType maps an annotation text onto a TypeID: primitive names,
// InitVar[inner] wrappers, and already-declared class names. Forward class
// references are not resolved; the caller reports those as unknown. The
// driver also uses it to rebuild signatures from cached type labels.
func ResolveType(mod *ast.Module, text string) types.TypeID {
	t := strings.TrimSpace(text)
	b := mod.Types.Builtins()

	if inner, ok := strings.CutPrefix(t, "InitVar["); ok && strings.HasSuffix(inner, "]") {
		innerID := ResolveType(mod, strings.TrimSuffix(inner, "]"))
		if innerID == types.NoTypeID {
			return types.NoTypeID
		}
		return mod.Types.InternInitOnly(innerID)
	}

	switch t {
	case "int":
		return b.Int
	case "str":
		return b.Str
	case "float":
		return b.Float
	case "bool":
		return b.Bool
	case "None":
		return b.None
	case "Any":
		return b.Any
	}

	if classID, ok := mod.LookupClass(mod.Strings.Intern(t)); ok {
		return mod.Class(classID).Type
	}
	return types.NoTypeID
}
