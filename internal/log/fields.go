package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldSource     = "source"
	FieldDateLabel  = "date_label"
	FieldMember     = "member"
	FieldEntries    = "entries"
	FieldWrites     = "writes"
	FieldSheetRange = "sheet_range"
	FieldImportID   = "import_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentCLI     = "cli"
	ComponentTracker = "tracker"
	ComponentLedger  = "ledger"
	ComponentSheets  = "sheets"
	ComponentExtract = "extract"
	ComponentChart   = "chart"
	ComponentNotify  = "notify"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentHistory = "history"
)

// Operations defines standard operation names
const (
	OpUpsert  = "upsert"
	OpExtract = "extract"
	OpAlign   = "align"
	OpRender  = "render"
	OpIngest  = "ingest"
	OpScan    = "scan"
	OpNotify  = "notify"
	OpRead    = "read"
	OpWrite   = "write"
	OpStartup = "startup"
)
