package apperror

// Machine-readable error codes. These are part of the API contract; clients
// branch on them, so renaming one is a breaking change.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodeReferential     = "REFERENTIAL_VIOLATION"
	CodeRequestInFlight = "REQUEST_IN_FLIGHT"
	CodeRateLimited     = "RATE_LIMITED"

	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
