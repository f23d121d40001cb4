package errors

// ErrorCode identifies a failure class in API responses and logs.
type ErrorCode int32

const (
	ErrorCode_INTERNAL                   ErrorCode = 1
	ErrorCode_INVALID_ARGUMENT           ErrorCode = 2
	ErrorCode_INVALID_PAYLOAD            ErrorCode = 3
	ErrorCode_UNAUTHENTICATED            ErrorCode = 4
	ErrorCode_NOT_FOUND                  ErrorCode = 5
	ErrorCode_CONFLICT                   ErrorCode = 6
	ErrorCode_UPSTREAM_TIMEOUT           ErrorCode = 10
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 12
	ErrorCode_AI_SUMMARY_FAILED          ErrorCode = 20
	ErrorCode_AI_TRANSCRIPTION_FAILED    ErrorCode = 21
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_CONFLICT:                   "CONFLICT",
	ErrorCode_UPSTREAM_TIMEOUT:           "UPSTREAM_TIMEOUT",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:          "AI_SUMMARY_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON bodies and zap fields.
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
