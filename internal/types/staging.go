package types

// Staging holds the independently parsed record collections of one
// conversion run. Keyed collections keep their insertion order in a
// parallel slice so every pass iterates deterministically.
type Staging struct {
	Nodes                []*Node
	EnvironmentVariables []*EnvironmentVariable
	ValueTables          []ValueTable
	GlobalProperties     PropertyMap

	Messages     map[uint32]*Message
	MessageOrder []uint32

	Signals     map[uint32][]*Signal
	SignalOrder []uint32

	ExtraTransmitters     map[uint32][]string
	ExtraTransmitterOrder []uint32

	Definitions     map[DefinitionKey]PropertyDefinition
	DefinitionOrder []DefinitionKey

	Assignments []PropertyAssignment
	Comments    []CommentRecord
}

func NewStaging() *Staging {
	return &Staging{
		GlobalProperties:  PropertyMap{},
		Messages:          map[uint32]*Message{},
		Signals:           map[uint32][]*Signal{},
		ExtraTransmitters: map[uint32][]string{},
		Definitions:       map[DefinitionKey]PropertyDefinition{},
	}
}

// AddMessage stores msg under its id. It reports false and leaves the
// staging untouched when the id is already present.
func (s *Staging) AddMessage(msg *Message) bool {
	if _, exists := s.Messages[msg.ID]; exists {
		return false
	}
	if msg.Properties == nil {
		msg.Properties = PropertyMap{}
	}
	s.Messages[msg.ID] = msg
	s.MessageOrder = append(s.MessageOrder, msg.ID)
	return true
}

// AddSignal appends sig to the raw signal list of messageID.
func (s *Staging) AddSignal(messageID uint32, sig *Signal) {
	if sig.Properties == nil {
		sig.Properties = PropertyMap{}
	}
	if _, exists := s.Signals[messageID]; !exists {
		s.SignalOrder = append(s.SignalOrder, messageID)
	}
	s.Signals[messageID] = append(s.Signals[messageID], sig)
}

// SetExtraTransmitters records the raw transmitter list of messageID. A
// later row for the same id replaces the earlier list.
func (s *Staging) SetExtraTransmitters(messageID uint32, transmitters []string) {
	if _, exists := s.ExtraTransmitters[messageID]; !exists {
		s.ExtraTransmitterOrder = append(s.ExtraTransmitterOrder, messageID)
	}
	s.ExtraTransmitters[messageID] = transmitters
}

func (s *Staging) AddNode(node *Node) {
	if node.Properties == nil {
		node.Properties = PropertyMap{}
	}
	s.Nodes = append(s.Nodes, node)
}

func (s *Staging) AddEnvironmentVariable(env *EnvironmentVariable) {
	if env.Properties == nil {
		env.Properties = PropertyMap{}
	}
	s.EnvironmentVariables = append(s.EnvironmentVariables, env)
}

// AddDefinition reports false when a definition with the same scope and
// name already exists.
func (s *Staging) AddDefinition(def PropertyDefinition) bool {
	key := DefinitionKey{Scope: def.Scope, Name: def.Name}
	if _, exists := s.Definitions[key]; exists {
		return false
	}
	s.Definitions[key] = def
	s.DefinitionOrder = append(s.DefinitionOrder, key)
	return true
}
