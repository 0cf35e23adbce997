package printing

// RenderError represents an error while building a document definition
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for render failures
const (
	ErrCodeInvalidDesign     = "INVALID_DESIGN"
	ErrCodeMalformedTemplate = "MALFORMED_TEMPLATE"
	ErrCodeMissingData       = "MISSING_DATA"
	ErrCodeRenderFailed      = "RENDER_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
