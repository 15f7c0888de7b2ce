package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderXRequestID         = "X-Request-ID"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv; charset=utf-8"

	// Context keys
	ContextKeyRequestID = "request_id"

	// Database table names
	TableTickets     = "tickets"
	TableTicketItems = "ticket_items"

	// Upload form field for spreadsheet imports
	FormFieldImportFile = "file"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
