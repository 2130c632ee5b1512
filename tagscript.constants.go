package tagscript

// Default interpretation limits
const (
	DefaultMaxCharLimit   = 2000
	DefaultMaxDepth       = 16
	DefaultMaxInvocations = 200
)

// Default declaration delimiters
const (
	DefaultOpenDelim  = '{'
	DefaultCloseDelim = '}'
)

// Log message constants
const (
	LogMsgEngineCreated      = "engine created"
	LogMsgProcessStart       = "interpretation started"
	LogMsgProcessEnd         = "interpretation finished"
	LogMsgAdapterFault       = "adapter fault, falling back to literal"
	LogMsgBlockFault         = "block fault, falling back to literal"
	LogMsgCharLimitReached   = "character limit reached, output truncated"
	LogMsgDepthLimitReached  = "recursion depth limit reached, returning raw text"
	LogMsgInvocationsReached = "invocation limit reached, falling back to literal"
	LogMsgStoredTagFetched   = "stored tag fetched"
)

// Log field constants
const (
	LogFieldIdentifier  = "identifier"
	LogFieldBlocks      = "blocks"
	LogFieldAdapters    = "adapters"
	LogFieldLength      = "length"
	LogFieldLimit       = "limit"
	LogFieldDepth       = "depth"
	LogFieldInvocations = "invocations"
	LogFieldTruncated   = "truncated"
	LogFieldName        = "name"
	LogFieldGuild       = "guild_id"
	LogFieldUses        = "uses"
)
