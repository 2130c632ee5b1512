package tagscript

import (
	"errors"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Registry errors
	ErrMsgNilBlock         = "block cannot be nil"
	ErrMsgNilAdapter       = "adapter cannot be nil"
	ErrMsgNoBlockNames     = "block declares no identifiers"
	ErrMsgEmptyIdentifier  = "identifier cannot be empty"
	ErrMsgDuplicateBlock   = "identifier already registered to another block"
	ErrMsgDuplicateAdapter = "identifier already registered to another adapter"
	ErrMsgAdapterCollision = "identifier registered as both adapter and block"

	// Configuration errors
	ErrMsgInvalidDelimiters = "delimiters must be distinct single-byte characters"
	ErrMsgReservedDelimiter = "delimiter conflicts with a reserved grammar character"

	// Dispatch signals
	ErrMsgDeclined       = "declined"
	ErrMsgExtensionPanic = "extension panicked"

	// Document errors
	ErrMsgDocumentEmpty       = "document is empty"
	ErrMsgFrontmatterUnclosed = "unclosed frontmatter block"
	ErrMsgFrontmatterTooLarge = "frontmatter exceeds size limit"
	ErrMsgFrontmatterInvalid  = "invalid frontmatter"
	ErrMsgDocumentNameMissing = "document name is required"
	ErrMsgDocumentReadFailed  = "document read failed"

	// Storage errors
	ErrMsgTagNotFound       = "tag not found"
	ErrMsgTagNameEmpty      = "tag name cannot be empty"
	ErrMsgStorageClosed     = "storage is closed"
	ErrMsgEmptyConnString   = "connection string cannot be empty"
	ErrMsgConnectionFailed  = "database connection failed"
	ErrMsgMigrationFailed   = "schema migration failed"
	ErrMsgQueryFailed       = "query failed"
	ErrMsgNilStorage        = "storage cannot be nil"
	ErrMsgInvalidTableName  = "invalid table prefix"
	ErrMsgIncrementUsesFail = "use counter update failed"
)

// Error code constants for categorization
const (
	ErrCodeRegistry = "TAGSCRIPT_REGISTRY"
	ErrCodeConfig   = "TAGSCRIPT_CONFIG"
	ErrCodeDocument = "TAGSCRIPT_DOCUMENT"
	ErrCodeStorage  = "TAGSCRIPT_STORAGE"
)

// Metadata key constants
const (
	MetaKeyIdentifier = "identifier"
	MetaKeyName       = "name"
	MetaKeyGuild      = "guild_id"
	MetaKeyTag        = "tag"
	MetaKeyPath       = "path"
)

// ErrDecline signals that a Block or Adapter does not claim the current
// declaration; the interpreter continues down the dispatch chain and
// ultimately falls back to the raw literal text. It is a signal, not a
// fault, and is never surfaced to callers.
var ErrDecline = errors.New(ErrMsgDeclined)

// ErrTagNotFound is the sentinel wrapped by storage backends when a
// requested tag does not exist. Check with errors.Is.
var ErrTagNotFound = errors.New(ErrMsgTagNotFound)

// NewNilBlockError reports a nil block passed at construction.
func NewNilBlockError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilBlock)
}

// NewNilAdapterError reports a nil adapter passed at construction.
func NewNilAdapterError(name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilAdapter).
		WithMetadata(MetaKeyIdentifier, name)
}

// NewNoBlockNamesError reports a block that declares no identifiers.
func NewNoBlockNamesError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNoBlockNames)
}

// NewEmptyIdentifierError reports an identifier that is empty after
// normalization.
func NewEmptyIdentifierError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgEmptyIdentifier)
}

// NewDuplicateBlockError reports an identifier claimed by two different
// blocks.
func NewDuplicateBlockError(identifier string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgDuplicateBlock).
		WithMetadata(MetaKeyIdentifier, identifier)
}

// NewDuplicateAdapterError reports two adapter names normalizing to the
// same identifier.
func NewDuplicateAdapterError(identifier string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgDuplicateAdapter).
		WithMetadata(MetaKeyIdentifier, identifier)
}

// NewAdapterCollisionError reports an identifier registered as both an
// adapter and a block.
func NewAdapterCollisionError(identifier string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgAdapterCollision).
		WithMetadata(MetaKeyIdentifier, identifier)
}

// NewInvalidDelimitersError reports an unusable delimiter configuration.
func NewInvalidDelimitersError() error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgInvalidDelimiters)
}

// NewReservedDelimiterError reports a delimiter colliding with the
// parameter, separator, or escape characters.
func NewReservedDelimiterError() error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgReservedDelimiter)
}

// NewDocumentError creates a document parse error.
func NewDocumentError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeDocument, msg)
	}
	return cuserr.NewValidationError(ErrCodeDocument, msg)
}

// NewTagNotFoundError reports a missing stored tag. The returned error
// matches ErrTagNotFound under errors.Is.
func NewTagNotFoundError(guildID, name string) error {
	return cuserr.WrapStdError(ErrTagNotFound, ErrCodeStorage, ErrMsgTagNotFound).
		WithMetadata(MetaKeyGuild, guildID).
		WithMetadata(MetaKeyName, name)
}

// NewStorageClosedError reports an operation on a closed storage.
func NewStorageClosedError() error {
	return cuserr.NewValidationError(ErrCodeStorage, ErrMsgStorageClosed)
}

// NewStorageError creates a storage error, optionally wrapping a cause.
func NewStorageError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeStorage, msg)
	}
	return cuserr.NewValidationError(ErrCodeStorage, msg)
}
