package core

// ErrorKind classifies a normalized failure.
type ErrorKind int

const (
	KindUnknownError ErrorKind = iota
	KindValidationFailed
	KindHTTPError
	KindUnhandledError
)

// String returns the name written to the "error" field of ErrorResponse.
func (k ErrorKind) String() string {
	switch k {
	case KindValidationFailed:
		return "ValidationError"
	case KindHTTPError:
		return "HttpError"
	case KindUnhandledError:
		return "UnhandledError"
	default:
		return "UnknownError"
	}
}

// ParseErrorKind is the inverse of ErrorKind.String. Unrecognized names map
// to KindUnknownError.
func ParseErrorKind(s string) ErrorKind {
	switch s {
	case "ValidationError":
		return KindValidationFailed
	case "HttpError":
		return KindHTTPError
	case "UnhandledError":
		return KindUnhandledError
	default:
		return KindUnknownError
	}
}
