package core

import (
	"errors"
	"fmt"
	"strings"

	"dbcsheet/internal/shared"
	"dbcsheet/internal/types"
)

var (
	ErrMalformedScope   = errors.New("malformed scope identifier")
	ErrInvalidMessageID = errors.New("invalid message id")
	ErrUnknownScopeKind = errors.New("unknown scope kind")
)

// ScopeRef is a parsed scope identifier. Each variant carries the
// identifier type its scope needs, so dispatch never re-parses text.
type ScopeRef interface {
	Kind() types.ScopeKind
	String() string
	isScopeRef()
}

type GlobalScope struct{}

type NodeScope struct {
	Name string
}

type MessageScope struct {
	ID uint32
}

type SignalScope struct {
	MessageID uint32
	Signal    string
}

type EnvironmentScope struct {
	Name string
}

func (GlobalScope) Kind() types.ScopeKind      { return types.ScopeGlobal }
func (NodeScope) Kind() types.ScopeKind        { return types.ScopeNode }
func (MessageScope) Kind() types.ScopeKind     { return types.ScopeMessage }
func (SignalScope) Kind() types.ScopeKind      { return types.ScopeSignal }
func (EnvironmentScope) Kind() types.ScopeKind { return types.ScopeEnvironment }

func (GlobalScope) String() string        { return "global" }
func (s NodeScope) String() string        { return s.Name }
func (s MessageScope) String() string     { return shared.FormatHexID(s.ID) }
func (s SignalScope) String() string      { return shared.FormatHexID(s.MessageID) + ":" + s.Signal }
func (s EnvironmentScope) String() string { return s.Name }

func (GlobalScope) isScopeRef()      {}
func (NodeScope) isScopeRef()        {}
func (MessageScope) isScopeRef()     {}
func (SignalScope) isScopeRef()      {}
func (EnvironmentScope) isScopeRef() {}

// ParseScopeRef turns a raw scope identifier into a typed reference.
// Signal identifiers must be "messageId:signalName" with exactly one
// separator and two non-empty parts; anything else is ErrMalformedScope.
// An unparsable message id is ErrInvalidMessageID.
func ParseScopeRef(kind types.ScopeKind, raw string) (ScopeRef, error) {
	switch kind {
	case types.ScopeGlobal:
		return GlobalScope{}, nil
	case types.ScopeNode:
		return NodeScope{Name: raw}, nil
	case types.ScopeEnvironment:
		return EnvironmentScope{Name: raw}, nil
	case types.ScopeMessage:
		id, err := shared.ParseHexID(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessageID, err)
		}
		return MessageScope{ID: id}, nil
	case types.ScopeSignal:
		parts := strings.Split(raw, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedScope, raw)
		}
		id, err := shared.ParseHexID(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessageID, err)
		}
		return SignalScope{MessageID: id, Signal: parts[1]}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScopeKind, kind)
	}
}
