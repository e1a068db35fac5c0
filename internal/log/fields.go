package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldKind      = "kind"
	FieldKey       = "key"
	FieldIndex     = "index"
	FieldRecords   = "records"
	FieldBytes     = "bytes"
	FieldMode      = "mode"
	FieldField     = "field"
	FieldMissing   = "missing"
	FieldDuration  = "duration_ms"
	FieldBackend   = "backend"
	FieldEvent     = "event"
	FieldRunID     = "run_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentForm    = "form"
	ComponentBook    = "book"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpList       = "list"
	OpLoad       = "load"
	OpPersist    = "persist"
	OpValidate   = "validate"
	OpContribute = "contribute"
	OpShutdown   = "shutdown"
	OpStartup    = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeCorrupt       = "corrupt_data_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRecord adds the collection and position a record operation touched.
// A negative index is omitted.
func (f LogFields) WithRecord(kind, key string, index int) LogFields {
	f[FieldKind] = kind
	f[FieldKey] = key
	if index >= 0 {
		f[FieldIndex] = index
	}
	return f
}

// WithPayload adds size information for a serialized collection.
func (f LogFields) WithPayload(records, bytes int) LogFields {
	f[FieldRecords] = records
	f[FieldBytes] = bytes
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
