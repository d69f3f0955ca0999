package errors

// ErrorCode identifies an application error class across service boundaries.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL        ErrorCode = 1000
	ErrorCode_INVALID_INPUT   ErrorCode = 1001
	ErrorCode_NOT_FOUND       ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED ErrorCode = 1003
	ErrorCode_TIMEOUT         ErrorCode = 1004
	ErrorCode_STORE_FAILED    ErrorCode = 1005
	ErrorCode_CACHE_FAILED    ErrorCode = 1006
	ErrorCode_EXTERNAL_FAILED ErrorCode = 1007
	ErrorCode_PROFILE_MISSING ErrorCode = 1008
	ErrorCode_STORAGE_FAILED  ErrorCode = 1009

	ErrorCode_TRANSCODE_FAILED      ErrorCode = 2001
	ErrorCode_MODEL_LOAD_FAILED     ErrorCode = 2002
	ErrorCode_TRANSCRIPTION_FAILED  ErrorCode = 2003
	ErrorCode_NO_SPEECH_DETECTED    ErrorCode = 2004
	ErrorCode_EXTRACTION_FAILED     ErrorCode = 2005
	ErrorCode_CLASSIFICATION_FAILED ErrorCode = 2006
	ErrorCode_ALERT_CREATE_FAILED   ErrorCode = 2007
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_INPUT:         "INVALID_INPUT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:       "UNAUTHENTICATED",
	ErrorCode_TIMEOUT:               "TIMEOUT",
	ErrorCode_STORE_FAILED:          "STORE_FAILED",
	ErrorCode_CACHE_FAILED:          "CACHE_FAILED",
	ErrorCode_EXTERNAL_FAILED:       "EXTERNAL_FAILED",
	ErrorCode_PROFILE_MISSING:       "PROFILE_MISSING",
	ErrorCode_STORAGE_FAILED:        "STORAGE_FAILED",
	ErrorCode_TRANSCODE_FAILED:      "TRANSCODE_FAILED",
	ErrorCode_MODEL_LOAD_FAILED:     "MODEL_LOAD_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:  "TRANSCRIPTION_FAILED",
	ErrorCode_NO_SPEECH_DETECTED:    "NO_SPEECH_DETECTED",
	ErrorCode_EXTRACTION_FAILED:     "EXTRACTION_FAILED",
	ErrorCode_CLASSIFICATION_FAILED: "CLASSIFICATION_FAILED",
	ErrorCode_ALERT_CREATE_FAILED:   "ALERT_CREATE_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
