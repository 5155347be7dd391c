package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldQuery       = "query"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldSessionID   = "session_id"
	FieldRecipient   = "recipient"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldTotal       = "total"
	FieldCeiling     = "ceiling"
	FieldFilename    = "filename"
	FieldFormat      = "format"
	FieldRows        = "rows"
	FieldNaNRows     = "nan_rows"
	FieldNotifier    = "notifier"
	FieldCount       = "count"
	FieldHints       = "hints"
)

const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentExpense   = "expense"
	ComponentIngest    = "ingest"
	ComponentBudget    = "budget"
	ComponentSession   = "session"
	ComponentAuth      = "auth"
	ComponentNotify    = "notify"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentBackend   = "backend"
	ComponentTemplate  = "template"
)

const (
	OpAppend   = "append"
	OpImport   = "import"
	OpParse    = "parse"
	OpAlert    = "alert"
	OpBudgets  = "save_budgets"
	OpDispatch = "dispatch"
	OpLogin    = "login"
	OpSignup   = "signup"
	OpLogout   = "logout"
	OpRender   = "render"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields builds structured attributes fluently.
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

func (f LogFields) WithExpense(desc string, amount float64, category string) LogFields {
	f[FieldDescription] = desc
	f[FieldAmount] = amount
	f[FieldCategory] = category
	return f
}

// WithAlert adds the fields of a budget alert.
func (f LogFields) WithAlert(recipient, category string, total, ceiling float64) LogFields {
	f[FieldRecipient] = recipient
	f[FieldCategory] = category
	f[FieldTotal] = total
	f[FieldCeiling] = ceiling
	return f
}

func (f LogFields) WithStatement(filename, format string, rows, nanRows int) LogFields {
	f[FieldFilename] = filename
	f[FieldFormat] = format
	f[FieldRows] = rows
	f[FieldNaNRows] = nanRows
	return f
}

func (f LogFields) WithHTTPRequest(method, path, query, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	f[FieldUserAgent] = userAgent
	return f
}

func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = statusCode < 400
	return f
}

// ToSlice flattens the fields into slog key/value arguments.
func (f LogFields) ToSlice() []any {
	out := make([]any, 0, len(f)*2)
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
