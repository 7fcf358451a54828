package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeUnauthorized    ErrorCode = "COMMON_003"
	ErrCodeNotFound        ErrorCode = "COMMON_004"
	ErrCodeTimeout         ErrorCode = "COMMON_005"
	ErrCodeSerialization   ErrorCode = "COMMON_006"
	ErrCodeExternalService ErrorCode = "COMMON_007"
	ErrCodeDatabaseError   ErrorCode = "COMMON_008"
)

// Aliases used at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeUnauthorized = ErrCodeUnauthorized
	CodeNotFound     = ErrCodeNotFound
	CodeTimeout      = ErrCodeTimeout
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// Optimizer module error codes.
const (
	ErrCodeOptimizerUnreachable   ErrorCode = "OPT_001"
	ErrCodeOptimizerBadResponse   ErrorCode = "OPT_002"
	ErrCodeOptimizerNoConvergence ErrorCode = "OPT_003"
)

// Solution-store module error codes.
const (
	ErrCodeSelectionOutOfRange ErrorCode = "SOL_001"
	ErrCodeNoActiveSolution    ErrorCode = "SOL_002"
	ErrCodeCompositionMismatch ErrorCode = "SOL_003"
)

// Report module error codes.
const (
	ErrCodeRenderRegionMissing ErrorCode = "RPT_001"
	ErrCodeRenderFailed        ErrorCode = "RPT_002"
	ErrCodeArtifactWriteFailed ErrorCode = "RPT_003"
)

// History module error codes.
const (
	ErrCodeHistoryQueryFailed ErrorCode = "HIS_001"
	ErrCodeHistoryWriteFailed ErrorCode = "HIS_002"
)

// Domain-specific aliases.
const (
	CodeOptimizerUnreachable   = ErrCodeOptimizerUnreachable
	CodeOptimizerBadResponse   = ErrCodeOptimizerBadResponse
	CodeOptimizerNoConvergence = ErrCodeOptimizerNoConvergence
	CodeSelectionOutOfRange    = ErrCodeSelectionOutOfRange
	CodeNoActiveSolution       = ErrCodeNoActiveSolution
	CodeCompositionMismatch    = ErrCodeCompositionMismatch
	CodeRenderRegionMissing    = ErrCodeRenderRegionMissing
	CodeRenderFailed           = ErrCodeRenderFailed
	CodeArtifactWriteFailed    = ErrCodeArtifactWriteFailed
	CodeHistoryQueryFailed     = ErrCodeHistoryQueryFailed
	CodeHistoryWriteFailed     = ErrCodeHistoryWriteFailed
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeTimeout:         http.StatusGatewayTimeout,
	ErrCodeSerialization:   http.StatusInternalServerError,
	ErrCodeExternalService: http.StatusBadGateway,
	ErrCodeDatabaseError:   http.StatusInternalServerError,

	ErrCodeOptimizerUnreachable:   http.StatusBadGateway,
	ErrCodeOptimizerBadResponse:   http.StatusBadGateway,
	ErrCodeOptimizerNoConvergence: http.StatusUnprocessableEntity,

	ErrCodeSelectionOutOfRange: http.StatusBadRequest,
	ErrCodeNoActiveSolution:    http.StatusNotFound,
	ErrCodeCompositionMismatch: http.StatusBadGateway,

	ErrCodeRenderRegionMissing: http.StatusNotFound,
	ErrCodeRenderFailed:        http.StatusInternalServerError,
	ErrCodeArtifactWriteFailed: http.StatusInternalServerError,

	ErrCodeHistoryQueryFailed: http.StatusInternalServerError,
	ErrCodeHistoryWriteFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal server error",
	ErrCodeBadRequest:      "bad request",
	ErrCodeUnauthorized:    "unauthorized",
	ErrCodeNotFound:        "resource not found",
	ErrCodeTimeout:         "request timeout",
	ErrCodeSerialization:   "serialization failed",
	ErrCodeExternalService: "external service error",
	ErrCodeDatabaseError:   "database error",

	ErrCodeOptimizerUnreachable:   "optimizer service unreachable",
	ErrCodeOptimizerBadResponse:   "optimizer returned a malformed response",
	ErrCodeOptimizerNoConvergence: "optimization failed to converge",

	ErrCodeSelectionOutOfRange: "selection index out of range",
	ErrCodeNoActiveSolution:    "no active solution",
	ErrCodeCompositionMismatch: "composition length does not match element catalog",

	ErrCodeRenderRegionMissing: "render region not available",
	ErrCodeRenderFailed:        "failed to render region",
	ErrCodeArtifactWriteFailed: "failed to write report artifact",

	ErrCodeHistoryQueryFailed: "failed to query run history",
	ErrCodeHistoryWriteFailed: "failed to record run history",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}
