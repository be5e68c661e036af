package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 20000-20099: Client input shape errors (types, values, signatures)
// 20100-20199: Policy errors
// 20200-20299: Harness errors (compile, run, timeout)
// 20300-20399: Service-level errors (languages, backends, isolation)

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalServerError ErrorCode = 10001
	InvalidParams       ErrorCode = 10002
	NotFound            ErrorCode = 10003
	TooManyRequests     ErrorCode = 10006
	ServiceUnavailable  ErrorCode = 10007
	Timeout             ErrorCode = 10008

	// Validation errors (10300-10399)
	ValidationFailed   ErrorCode = 10300
	RequiredFieldEmpty ErrorCode = 10303

	// ========== Client input (20000-20099) ==========
	MalformedType      ErrorCode = 20000
	MalformedValue     ErrorCode = 20001
	MalformedSignature ErrorCode = 20002
	MalformedTestCase  ErrorCode = 20003

	// ========== Policy (20100-20199) ==========
	BlacklistViolation ErrorCode = 20100

	// ========== Harness (20200-20299) ==========
	CompileFailure     ErrorCode = 20200
	RuntimeFailure     ErrorCode = 20201
	ExecutionTimeout   ErrorCode = 20202
	SandboxSystemError ErrorCode = 20203
	RenderFailure      ErrorCode = 20204

	// ========== Service (20300-20399) ==========
	UnknownLanguage           ErrorCode = 20300
	BackendInitFailed         ErrorCode = 20301
	IsolationProvisionFailure ErrorCode = 20302
	ExecutorSystemError       ErrorCode = 20303
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",
	NotFound:            "Resource not found",
	TooManyRequests:     "Too many requests, please try again later",
	ServiceUnavailable:  "Service temporarily unavailable",
	Timeout:             "Request timeout",

	ValidationFailed:   "Validation failed",
	RequiredFieldEmpty: "Required field is empty",

	MalformedType:      "Malformed type descriptor",
	MalformedValue:     "Malformed value literal",
	MalformedSignature: "Malformed function signature",
	MalformedTestCase:  "Malformed test case",

	BlacklistViolation: "Fragment uses disallowed tokens",

	CompileFailure:     "Compilation failed",
	RuntimeFailure:     "Program exited abnormally",
	ExecutionTimeout:   "Execution timed out",
	SandboxSystemError: "Sandbox system error",
	RenderFailure:      "Failed to render program source",

	UnknownLanguage:           "Language not supported",
	BackendInitFailed:         "Language backend failed to initialize",
	IsolationProvisionFailure: "Failed to provision isolated execution context",
	ExecutorSystemError:       "Executor system error",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// HTTPStatus returns the recommended HTTP status code for the error code
func (c ErrorCode) HTTPStatus() int {
	switch {
	case c == Success:
		return 200
	case c == NotFound, c == UnknownLanguage:
		return 404
	case c == TooManyRequests:
		return 429
	case c == ServiceUnavailable:
		return 503
	case c == Timeout:
		return 504
	case c >= 10300 && c < 10400: // Validation errors
		return 400
	case c >= 20000 && c < 20200: // Client input and policy errors
		return 400
	case c == InvalidParams:
		return 400
	default:
		return 500
	}
}
