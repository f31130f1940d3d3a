package types

type ScopeKind string

const (
	ScopeGlobal      ScopeKind = "GLOBAL"
	ScopeNode        ScopeKind = "NODE"
	ScopeMessage     ScopeKind = "MESSAGE"
	ScopeSignal      ScopeKind = "SIGNAL"
	ScopeEnvironment ScopeKind = "ENV"
)

type ValueType string

const (
	ValueTypeInt    ValueType = "INT"
	ValueTypeHex    ValueType = "HEX"
	ValueTypeFloat  ValueType = "FLOAT"
	ValueTypeString ValueType = "STRING"
	ValueTypeEnum   ValueType = "ENUM"
)

type ByteOrder string

const (
	ByteOrderMotorola ByteOrder = "motorola"
	ByteOrderIntel    ByteOrder = "intel"
)

// SignalValueType is the raw storage type of a signal.
type SignalValueType string

const (
	SignalValueInteger SignalValueType = "integer"
	SignalValueFloat   SignalValueType = "float"
	SignalValueDouble  SignalValueType = "double"
)

// EnvAccess is the access right of an environment variable.
type EnvAccess string

const (
	EnvAccessUnrestricted EnvAccess = "unrestricted"
	EnvAccessRead         EnvAccess = "read"
	EnvAccessWrite        EnvAccess = "write"
	EnvAccessReadWrite    EnvAccess = "readwrite"
)

type EnvVarType string

const (
	EnvVarTypeInt    EnvVarType = "INT"
	EnvVarTypeFloat  EnvVarType = "FLOAT"
	EnvVarTypeString EnvVarType = "STRING"
	EnvVarTypeData   EnvVarType = "DATA"
)

// CommentType is the canonical short form of a comment type code.
type CommentType string

const (
	CommentTypeUnknown     CommentType = ""
	CommentTypeMessage     CommentType = "BO"
	CommentTypeSignal      CommentType = "SG"
	CommentTypeNode        CommentType = "BU"
	CommentTypeEnvironment CommentType = "EV"
)
