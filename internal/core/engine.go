package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"dbcsheet/internal/diag"
	"dbcsheet/internal/policies"
	"dbcsheet/internal/shared"
	"dbcsheet/internal/types"
)

// Engine knits the independently parsed record collections of one
// Staging into a single object graph. It mutates the staging in place and
// reports every referential failure to the sink without stopping.
type Engine struct {
	staging  *types.Staging
	sink     diag.Sink
	newValue ValueFactory
	nodes    map[string]*types.Node
	envs     map[string]*types.EnvironmentVariable
}

// AssignmentOutcome records what happened to one raw property assignment.
// Diagnostic is nil when the value was applied. Target is nil when the
// scope identifier could not be parsed.
type AssignmentOutcome struct {
	Assignment types.PropertyAssignment
	Target     ScopeRef
	Applied    bool
	Diagnostic *diag.Diagnostic
}

type ResolveReport struct {
	SignalsAttached     int
	SignalSetsDropped   int
	TransmitterLists    int
	Assignments         []AssignmentOutcome
	CommentsApplied     int
	CommentsUnsupported int
}

// AppliedByScope counts applied assignments per target scope kind.
func (r ResolveReport) AppliedByScope() map[types.ScopeKind]int {
	counts := map[types.ScopeKind]int{}
	for _, outcome := range r.Assignments {
		if outcome.Applied && outcome.Target != nil {
			counts[outcome.Target.Kind()]++
		}
	}
	return counts
}

// AppliedAssignments counts the outcomes whose value reached an entity.
func (r ResolveReport) AppliedAssignments() int {
	count := 0
	for _, outcome := range r.Assignments {
		if outcome.Applied {
			count++
		}
	}
	return count
}

func NewEngine(staging *types.Staging, sink diag.Sink) *Engine {
	if sink == nil {
		sink = diag.Discard{}
	}
	e := &Engine{
		staging:  staging,
		sink:     sink,
		newValue: NewPropertyValue,
		nodes:    map[string]*types.Node{},
		envs:     map[string]*types.EnvironmentVariable{},
	}
	// first entry wins when upstream uniqueness was violated
	for _, node := range staging.Nodes {
		if _, exists := e.nodes[node.Name]; !exists {
			e.nodes[node.Name] = node
		}
	}
	for _, env := range staging.EnvironmentVariables {
		if _, exists := e.envs[env.Name]; !exists {
			e.envs[env.Name] = env
		}
	}
	return e
}

// WithValueFactory replaces the property value constructor.
func (e *Engine) WithValueFactory(factory ValueFactory) *Engine {
	if factory != nil {
		e.newValue = factory
	}
	return e
}

// Resolve runs every pass in its fixed order.
func (e *Engine) Resolve(ctx context.Context) ResolveReport {
	result := ResolveReport{}
	result.SignalsAttached, result.SignalSetsDropped = e.MergeSignals(ctx)
	result.TransmitterLists = e.MergeExtraTransmitters(ctx)
	result.Assignments = e.ResolveAssignments(ctx)
	result.CommentsApplied, result.CommentsUnsupported = e.ResolveComments(ctx)
	e.CheckReferences(ctx)
	log.Ctx(ctx).Debug().
		Int("signals", result.SignalsAttached).
		Int("dropped_signal_sets", result.SignalSetsDropped).
		Int("assignments", result.AppliedAssignments()).
		Int("comments", result.CommentsApplied).
		Msg("resolution completed")
	return result
}

// MergeSignals attaches each raw signal list to its message, in order. A
// list whose message does not exist is dropped whole with one warning.
func (e *Engine) MergeSignals(ctx context.Context) (attached int, dropped int) {
	for _, id := range e.staging.SignalOrder {
		signals := e.staging.Signals[id]
		msg, ok := e.staging.Messages[id]
		if !ok {
			e.sink.Report(diag.Warning("signals reference unknown message %s; %d signal(s) dropped", shared.FormatHexID(id), len(signals)))
			dropped++
			continue
		}
		for _, sig := range signals {
			sig.Parent = msg
			msg.Signals = append(msg.Signals, sig)
			attached++
		}
	}
	log.Ctx(ctx).Debug().Int("attached", attached).Int("dropped", dropped).Msg("signals merged")
	return attached, dropped
}

// MergeExtraTransmitters replaces each message's additional transmitter
// list with the raw one.
func (e *Engine) MergeExtraTransmitters(ctx context.Context) int {
	applied := 0
	for _, id := range e.staging.ExtraTransmitterOrder {
		msg, ok := e.staging.Messages[id]
		if !ok {
			e.sink.Report(diag.Warning("extra transmitters reference unknown message %s", shared.FormatHexID(id)))
			continue
		}
		msg.AdditionalTransmitters = append([]string(nil), e.staging.ExtraTransmitters[id]...)
		applied++
	}
	log.Ctx(ctx).Debug().Int("applied", applied).Msg("extra transmitters merged")
	return applied
}

// ResolveAssignments applies every raw property assignment independently.
// It must run after MergeSignals so signal scopes see attached signals.
func (e *Engine) ResolveAssignments(ctx context.Context) []AssignmentOutcome {
	outcomes := make([]AssignmentOutcome, 0, len(e.staging.Assignments))
	for _, assignment := range e.staging.Assignments {
		outcome := e.resolveAssignmentIsolated(assignment)
		if outcome.Diagnostic != nil {
			e.sink.Report(*outcome.Diagnostic)
		}
		outcomes = append(outcomes, outcome)
	}
	log.Ctx(ctx).Debug().Int("assignments", len(outcomes)).Msg("property assignments resolved")
	return outcomes
}

func (e *Engine) resolveAssignmentIsolated(assignment types.PropertyAssignment) (outcome AssignmentOutcome) {
	defer func() {
		if recovered := recover(); recovered != nil {
			d := diag.UnexpectedError(assignment.Property, recovered)
			outcome = AssignmentOutcome{Assignment: assignment, Diagnostic: &d}
		}
	}()
	target, d := e.resolveAssignment(assignment)
	return AssignmentOutcome{Assignment: assignment, Target: target, Applied: d == nil, Diagnostic: d}
}

func (e *Engine) resolveAssignment(assignment types.PropertyAssignment) (ScopeRef, *diag.Diagnostic) {
	def, ok := e.staging.Definitions[types.DefinitionKey{Scope: assignment.Scope, Name: assignment.Property}]
	if !ok {
		return nil, report(diag.PropertyNotFound(string(assignment.Scope), assignment.Property))
	}
	value, err := e.newValue(def, assignment.Value, assignment.Numeric)
	if err != nil {
		return nil, report(diag.PropertyValueInvalid(assignment.Property, assignment.Value, err))
	}

	ref, err := ParseScopeRef(assignment.Scope, assignment.ScopeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMessageID):
			return nil, report(diag.MessageReferenceNotFound(assignment.ScopeID, assignment.Property))
		case errors.Is(err, ErrMalformedScope):
			return nil, report(diag.Warning("property %s has malformed signal scope %q (want messageId:signalName)", assignment.Property, assignment.ScopeID))
		default:
			return nil, report(diag.UnexpectedError(assignment.Property, err))
		}
	}

	switch scope := ref.(type) {
	case GlobalScope:
		putProperty(&e.staging.GlobalProperties, def.Name, value)
	case NodeScope:
		node, ok := e.nodes[scope.Name]
		if !ok {
			return ref, report(diag.NodeReferenceNotFound(scope.Name, assignment.Property))
		}
		putProperty(&node.Properties, def.Name, value)
	case MessageScope:
		msg, ok := e.staging.Messages[scope.ID]
		if !ok {
			return ref, report(diag.MessageReferenceNotFound(scope.String(), assignment.Property))
		}
		putProperty(&msg.Properties, def.Name, value)
	case SignalScope:
		msg, ok := e.staging.Messages[scope.MessageID]
		if !ok {
			return ref, report(diag.MessageReferenceNotFound(shared.FormatHexID(scope.MessageID), assignment.Property))
		}
		sig := findSignal(msg, scope.Signal)
		if sig == nil {
			return ref, report(diag.SignalReferenceNotFound(shared.FormatHexID(scope.MessageID), scope.Signal, assignment.Property))
		}
		putProperty(&sig.Properties, def.Name, value)
	case EnvironmentScope:
		env, ok := e.envs[scope.Name]
		if !ok {
			return ref, report(diag.Warning("property %s references unknown environment variable %q", assignment.Property, scope.Name))
		}
		putProperty(&env.Properties, def.Name, value)
	default:
		return ref, report(diag.UnexpectedError(assignment.Property, fmt.Sprintf("unhandled scope %T", ref)))
	}
	return ref, nil
}

// ResolveComments sets comment text on the entity each record names.
// Records with an unrecognized type code are skipped without a
// diagnostic.
func (e *Engine) ResolveComments(ctx context.Context) (applied int, unsupported int) {
	for _, record := range e.staging.Comments {
		commentType := policies.NormalizeCommentType(record.Type)
		if commentType == types.CommentTypeUnknown {
			unsupported++
			continue
		}
		if e.applyComment(commentType, record) {
			applied++
			continue
		}
		e.sink.Report(diag.CommentScopeInvalid(string(commentType), record.Scope))
	}
	log.Ctx(ctx).Debug().Int("applied", applied).Int("unsupported", unsupported).Msg("comments resolved")
	return applied, unsupported
}

func (e *Engine) applyComment(commentType types.CommentType, record types.CommentRecord) bool {
	switch commentType {
	case types.CommentTypeMessage:
		ref, err := ParseScopeRef(types.ScopeMessage, record.Scope)
		if err != nil {
			return false
		}
		msg, ok := e.staging.Messages[ref.(MessageScope).ID]
		if !ok {
			return false
		}
		msg.Comment = record.Text
	case types.CommentTypeSignal:
		ref, err := ParseScopeRef(types.ScopeSignal, record.Scope)
		if err != nil {
			return false
		}
		scope := ref.(SignalScope)
		msg, ok := e.staging.Messages[scope.MessageID]
		if !ok {
			return false
		}
		sig := findSignal(msg, scope.Signal)
		if sig == nil {
			return false
		}
		sig.Comment = record.Text
	case types.CommentTypeNode:
		node, ok := e.nodes[record.Scope]
		if !ok {
			return false
		}
		node.Comment = record.Text
	case types.CommentTypeEnvironment:
		env, ok := e.envs[record.Scope]
		if !ok {
			return false
		}
		env.Comment = record.Text
	default:
		return false
	}
	return true
}

// CheckReferences reports transmitter and value table names that do not
// resolve. It never mutates the staging.
func (e *Engine) CheckReferences(ctx context.Context) {
	tables := map[string]struct{}{}
	for _, table := range e.staging.ValueTables {
		tables[table.Name] = struct{}{}
	}
	for _, id := range e.staging.MessageOrder {
		msg := e.staging.Messages[id]
		e.checkTransmitter(msg, msg.Transmitter)
		for _, transmitter := range msg.AdditionalTransmitters {
			e.checkTransmitter(msg, transmitter)
		}
		for _, sig := range msg.Signals {
			if sig.ValueTable == "" {
				continue
			}
			if _, ok := tables[sig.ValueTable]; !ok {
				e.sink.Report(diag.New(diag.KindValueTableNotFound, sig.Name,
					fmt.Sprintf("value table %q not found (message %s)", sig.ValueTable, shared.FormatHexID(msg.ID))))
			}
		}
	}
	for _, env := range e.staging.EnvironmentVariables {
		if env.ValueTable == "" {
			continue
		}
		if _, ok := tables[env.ValueTable]; !ok {
			e.sink.Report(diag.New(diag.KindValueTableNotFound, env.Name,
				fmt.Sprintf("value table %q not found", env.ValueTable)))
		}
	}
	log.Ctx(ctx).Debug().Msg("references checked")
}

func (e *Engine) checkTransmitter(msg *types.Message, name string) {
	if name == "" || policies.IsPlaceholderNode(name) {
		return
	}
	if _, ok := e.nodes[name]; ok {
		return
	}
	e.sink.Report(diag.New(diag.KindTransmitterNotFound, msg.Name,
		fmt.Sprintf("transmitter %q is not a defined node", name)))
}

func findSignal(msg *types.Message, name string) *types.Signal {
	for _, sig := range msg.Signals {
		if sig.Name == name {
			return sig
		}
	}
	return nil
}

// putProperty inserts or overwrites name in props.
func putProperty(props *types.PropertyMap, name string, value types.PropertyValue) {
	if *props == nil {
		*props = types.PropertyMap{}
	}
	(*props)[name] = value
}

func report(d diag.Diagnostic) *diag.Diagnostic {
	return &d
}
