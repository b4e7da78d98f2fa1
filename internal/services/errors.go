package services

// Error taxonomy shared by handlers. Each type maps to one HTTP status class;
// anything else surfaces as a generic 500 with the detail kept server-side.

// ValidationError is a client-caused error: malformed, out-of-range or
// missing input. Maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UnavailableError means an optional collaborator was never constructed or
// required credentials/tooling are absent. Maps to 503.
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string { return e.Message }

// TimeoutError means a bounded external tool exceeded its deadline. Maps to 504.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string { return e.Message }

// NotFoundError means the requested upstream resource does not exist. Maps to 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
