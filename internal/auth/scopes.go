package auth

// Scope names used by route declarations.
const (
	ScopeRead   = "read"
	ScopeWrite  = "write"
	ScopeManage = "manage"
	ScopeAdmin  = "admin"
)

// ScopesForRole resolves the scope list issued for a role. Unknown
// roles receive no scopes rather than an error: they can authenticate
// but pass no gate.
func ScopesForRole(roleScopes map[string][]string, role string) []string {
	scopes, ok := roleScopes[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}

// HasScopes decides the authorization gate: every required scope must
// be present in the granted set. It is a subset test, not any-of.
func HasScopes(required, granted []string) bool {
	if len(required) == 0 {
		return true
	}
	grantedSet := make(map[string]struct{}, len(granted))
	for _, scope := range granted {
		grantedSet[scope] = struct{}{}
	}
	for _, scope := range required {
		if _, ok := grantedSet[scope]; !ok {
			return false
		}
	}
	return true
}
