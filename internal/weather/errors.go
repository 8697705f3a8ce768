package weather

import "errors"

// ErrorKind classifies lookup failures.
type ErrorKind string

const (
	KindEmptyInput      ErrorKind = "empty_input"
	KindNotFound        ErrorKind = "not_found"
	KindUpstreamFailure ErrorKind = "upstream_failure"
	KindNetworkFailure  ErrorKind = "network_failure"
)

var errorMessages = map[ErrorKind]string{
	KindEmptyInput:      "Пожалуйста, введите название города или страны",
	KindNotFound:        "Город не найден. Пожалуйста, проверьте название.",
	KindUpstreamFailure: "Ошибка при получении данных о погоде.",
	KindNetworkFailure:  "Ошибка подключения. Проверьте интернет.",
}

// Message returns the sentence shown to the user for a kind.
func (k ErrorKind) Message() string {
	if msg, ok := errorMessages[k]; ok {
		return msg
	}
	return "Ошибка при обработке запроса."
}

// LookupError is the terminal failure of a lookup. Message is user-facing; Err keeps the
// underlying cause for logs.
type LookupError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NewLookupError builds a LookupError carrying the fixed message for kind.
func NewLookupError(kind ErrorKind, cause error) *LookupError {
	return &LookupError{Kind: kind, Message: kind.Message(), Err: cause}
}

// AsLookupError extracts a LookupError from err. Errors of any other type are reported as
// upstream failures so callers always have something to show.
func AsLookupError(err error) *LookupError {
	if err == nil {
		return nil
	}
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr
	}
	return NewLookupError(KindUpstreamFailure, err)
}

// IsKind reports whether err is a LookupError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Kind == kind
	}
	return false
}
