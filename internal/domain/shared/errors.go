package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized         = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden            = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidAmount        = NewDomainError("INVALID_AMOUNT", "Amount is negative or malformed")
	ErrInvalidAmountFormat  = NewDomainError("INVALID_AMOUNT_FORMAT", "Amount string cannot be parsed at this currency's precision")
	ErrInvalidPercentage    = NewDomainError("INVALID_PERCENTAGE", "Percentage must be between 0 and 100")
	ErrUnknownCurrency      = NewDomainError("UNKNOWN_CURRENCY", "Currency code is not recognized")
)
