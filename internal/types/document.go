package types

// NetworkDocument is the on-disk form of a resolved Network.
type NetworkDocument struct {
	RunID                string               `yaml:"run_id,omitempty"`
	Nodes                []NodeDocument       `yaml:"nodes"`
	Messages             []MessageDocument    `yaml:"messages"`
	EnvironmentVariables []EnvVarDocument     `yaml:"environment_variables,omitempty"`
	GlobalProperties     map[string]string    `yaml:"global_properties,omitempty"`
	ValueTables          []ValueTableDocument `yaml:"value_tables,omitempty"`
	Definitions          []DefinitionDocument `yaml:"property_definitions,omitempty"`
}

type NodeDocument struct {
	Name       string            `yaml:"name"`
	Comment    string            `yaml:"comment,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

type MessageDocument struct {
	ID                     string            `yaml:"id"`
	Name                   string            `yaml:"name"`
	DLC                    int               `yaml:"dlc"`
	Transmitter            string            `yaml:"transmitter,omitempty"`
	Extended               bool              `yaml:"extended,omitempty"`
	AdditionalTransmitters []string          `yaml:"additional_transmitters,omitempty"`
	Comment                string            `yaml:"comment,omitempty"`
	Properties             map[string]string `yaml:"properties,omitempty"`
	Signals                []SignalDocument  `yaml:"signals,omitempty"`
}

type SignalDocument struct {
	Name         string            `yaml:"name"`
	StartBit     int               `yaml:"start_bit"`
	Length       int               `yaml:"length"`
	ByteOrder    ByteOrder         `yaml:"byte_order"`
	Signed       bool              `yaml:"signed,omitempty"`
	Factor       float64           `yaml:"factor"`
	Offset       float64           `yaml:"offset"`
	Min          float64           `yaml:"min"`
	Max          float64           `yaml:"max"`
	Unit         string            `yaml:"unit,omitempty"`
	Receivers    []string          `yaml:"receivers,omitempty"`
	Multiplexing string            `yaml:"multiplexing,omitempty"`
	InitialValue *float64          `yaml:"initial_value,omitempty"`
	ValueType    SignalValueType   `yaml:"value_type,omitempty"`
	SendType     string            `yaml:"send_type,omitempty"`
	ValueTable   string            `yaml:"value_table,omitempty"`
	Values       map[int64]string  `yaml:"values,omitempty"`
	Comment      string            `yaml:"comment,omitempty"`
	Properties   map[string]string `yaml:"properties,omitempty"`
}

type EnvVarDocument struct {
	Name       string            `yaml:"name"`
	Type       EnvVarType        `yaml:"type"`
	Min        float64           `yaml:"min"`
	Max        float64           `yaml:"max"`
	Default    string            `yaml:"default,omitempty"`
	Unit       string            `yaml:"unit,omitempty"`
	Access     EnvAccess         `yaml:"access,omitempty"`
	Nodes      []string          `yaml:"nodes,omitempty"`
	DataLength int               `yaml:"data_length,omitempty"`
	ValueTable string            `yaml:"value_table,omitempty"`
	Values     map[int64]string  `yaml:"values,omitempty"`
	Comment    string            `yaml:"comment,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

type ValueTableDocument struct {
	Name   string           `yaml:"name"`
	Values map[int64]string `yaml:"values"`
}

type DefinitionDocument struct {
	Scope   ScopeKind `yaml:"scope"`
	Name    string    `yaml:"name"`
	Type    ValueType `yaml:"type"`
	Min     *float64  `yaml:"min,omitempty"`
	Max     *float64  `yaml:"max,omitempty"`
	Enum    []string  `yaml:"enum,omitempty"`
	Default string    `yaml:"default,omitempty"`
}

// DiagnosticsReport is the optional side file listing every diagnostic
// of a run.
type DiagnosticsReport struct {
	RunID     string   `yaml:"run_id"`
	Source    string   `yaml:"source"`
	CreatedAt string   `yaml:"created_at"`
	Status    string   `yaml:"status"`
	Errors    []string `yaml:"errors,omitempty"`
	Warnings  []string `yaml:"warnings,omitempty"`
}
