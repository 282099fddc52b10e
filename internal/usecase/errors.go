package usecase

// Códigos estables que los handlers mapean a status HTTP.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeAlreadySubmitted = "ALREADY_SUBMITTED"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidFlow      = "INVALID_FLOW"
	CodeTenantInactive   = "TENANT_INACTIVE"
	CodeDatabase         = "DATABASE_ERROR"
)

type DomainError struct {
	Code    string
	Message string

	// Errors trae la lista de mensajes cuando Code == VALIDATION_ERROR.
	Errors []string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

func AsDomainError(err error) (*DomainError, bool) {
	de, ok := err.(*DomainError)
	return de, ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func notFound(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func alreadySubmitted() *DomainError {
	return &DomainError{Code: CodeAlreadySubmitted, Message: "el lead ya fue enviado"}
}

func validationFailed(errs []string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: "datos incompletos", Errors: errs}
}
