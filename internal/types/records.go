package types

// PropertyAssignment is a raw BA row before resolution. ScopeID is
// interpreted according to Scope.
type PropertyAssignment struct {
	Scope    ScopeKind
	ScopeID  string
	Property string
	Value    string
	Numeric  bool
}

// CommentRecord is a raw comment row. Type is free text and matched
// case-insensitively.
type CommentRecord struct {
	Type  string
	Scope string
	Text  string
}

type DefinitionKey struct {
	Scope ScopeKind
	Name  string
}
