package values

type contextKey string

// ContextTracingKey carries the tracing context through a request.
const ContextTracingKey = contextKey("tracing-context")

// ContextAdminKey carries the authenticated administrator identity.
const ContextAdminKey = contextKey("admin-email")

const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-ID"
)

// Response statuses. util.StatusCode maps these onto HTTP codes.
const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	SystemErr      = "system-error"
	BadRequestBody = "bad-request"
	Unprocessable  = "unprocessable"
	NotAllowed     = "not-allowed"
	Conflict       = "conflict"
	NotFound       = "not-found"
	NotAuthorised  = "not-authorised"
	TokenExpired   = "token-expired"
)
