package troubleshoot

// ErrorType classifies a PostgreSQL error message.
type ErrorType string

const (
	TypeConnectionRefused    ErrorType = "connection_refused"
	TypeAuthenticationFailed ErrorType = "authentication_failed"
	TypePermissionDenied     ErrorType = "permission_denied"
	TypeRelationNotFound     ErrorType = "relation_not_found"
	TypeSyntaxError          ErrorType = "syntax_error"
	TypeDuplicateKey         ErrorType = "duplicate_key"
	TypeForeignKeyViolation  ErrorType = "foreign_key_violation"
	TypeOutOfMemory          ErrorType = "out_of_memory"
	TypeDiskFull             ErrorType = "disk_full"
	TypeUnknown              ErrorType = "unknown"
)

// Analysis is the result of analyzing one error message.
type Analysis struct {
	ErrorType   string `json:"error_type"`
	Explanation string `json:"explanation"`
	Solution    string `json:"solution"`
	ErrorCode   string `json:"error_code,omitempty"`
}

// CommonError is a reference entry for the troubleshooting sidebar.
type CommonError struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Solution    string `json:"solution"`
}

// Request is the error form's body.
type Request struct {
	ErrorText string `json:"error_text" validate:"required"`
}
