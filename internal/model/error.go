package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeContentTooLarge    = "CONTENT_TOO_LARGE"
	ErrCodePlatformInactive   = "PLATFORM_INACTIVE"
	ErrCodeInvalidViewerToken = "INVALID_VIEWER_TOKEN"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrContentTooLarge    = NewDomainError(ErrCodeContentTooLarge, "Tab content exceeds the maximum allowed size")
	ErrPlatformInactive   = NewDomainError(ErrCodePlatformInactive, "Commerce platform is not installed or not active")
	ErrInvalidViewerToken = NewDomainError(ErrCodeInvalidViewerToken, "Viewer token is invalid or expired")
)
