package types

// PropertyMap holds materialized custom property values keyed by
// definition name.
type PropertyMap map[string]PropertyValue

type PropertyValue struct {
	Name  string
	Type  ValueType
	Int   int64
	Float float64
	Text  string
}

type PropertyDefinition struct {
	Scope   ScopeKind
	Name    string
	Type    ValueType
	Min     *float64
	Max     *float64
	Enum    []string
	Default string
}

type ValueDescription struct {
	Value       int64
	Description string
}

type ValueTable struct {
	Name   string
	Values []ValueDescription
}

type Node struct {
	Name       string
	Comment    string
	Properties PropertyMap
}

type Message struct {
	ID                     uint32
	Name                   string
	DLC                    int
	Transmitter            string
	Extended               bool
	Signals                []*Signal
	AdditionalTransmitters []string
	Comment                string
	Properties             PropertyMap
}

// Signal is owned by its Message. Parent is set by the signal merge pass.
type Signal struct {
	Name         string
	Parent       *Message
	StartBit     int
	Length       int
	ByteOrder    ByteOrder
	Signed       bool
	Factor       float64
	Offset       float64
	Min          float64
	Max          float64
	Unit         string
	Receivers    []string
	Multiplexing string
	InitialValue *float64
	ValueType    SignalValueType
	SendType     string
	ValueTable   string
	Values       []ValueDescription
	Comment      string
	Properties   PropertyMap
}

type EnvironmentVariable struct {
	Name       string
	Type       EnvVarType
	Min        float64
	Max        float64
	Default    string
	Unit       string
	Access     EnvAccess
	Nodes      []string
	DataLength int
	ValueTable string
	Values     []ValueDescription
	Comment    string
	Properties PropertyMap
}

// Network is the resolved model handed to the serializer.
type Network struct {
	RunID                string
	Nodes                []*Node
	Messages             []*Message
	EnvironmentVariables []*EnvironmentVariable
	GlobalProperties     PropertyMap
	ValueTables          []ValueTable
	Definitions          []PropertyDefinition
}
