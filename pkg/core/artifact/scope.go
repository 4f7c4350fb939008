package artifact

import "strings"

// Scope is the declared usage context of a dependency.
type Scope string

const (
	ScopeCompile  Scope = "compile"
	ScopeRuntime  Scope = "runtime"
	ScopeProvided Scope = "provided"
	ScopeTest     Scope = "test"
	ScopeSystem   Scope = "system"
	ScopeImport   Scope = "import"
)

// ParseScope normalizes a declared scope. Empty input means compile.
func ParseScope(s string) Scope {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ScopeCompile
	}
	return Scope(s)
}

// NonRuntime reports whether the scope is absent from the runtime classpath
// of consumers (test and provided).
func (s Scope) NonRuntime() bool {
	return s == ScopeTest || s == ScopeProvided
}

// Derive returns the effective scope of a transitive dependency declared with
// scope child beneath a node of scope s. The boolean is false when the
// dependency does not propagate at all.
//
//	parent \ child  compile   runtime
//	compile         compile   runtime
//	runtime         runtime   runtime
//	provided        provided  provided
//	test            test      test
func (s Scope) Derive(child Scope) (Scope, bool) {
	if child != ScopeCompile && child != ScopeRuntime {
		return "", false
	}
	switch s {
	case ScopeCompile, "":
		return child, true
	case ScopeRuntime:
		return ScopeRuntime, true
	case ScopeProvided, ScopeSystem:
		return ScopeProvided, true
	case ScopeTest:
		return ScopeTest, true
	default:
		return child, true
	}
}
