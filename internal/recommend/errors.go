package recommend

import "errors"

// Kind classifies a request failure.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConfiguration Kind = "configuration"
	KindUpstream      Kind = "upstream"
)

// Sentinels matching every Error of the corresponding kind via errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrUpstream      = errors.New("upstream error")
)

// ConfigurationMessage is reported verbatim when catalog credentials are missing or rejected.
const ConfigurationMessage = "Spotify API credentials not configured. Please add SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables."

// Error is returned by Service for every failed request.
type Error struct {
	Kind    Kind
	Message string // safe to show to the caller
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindValidation:
		return target == ErrValidation
	case KindConfiguration:
		return target == ErrConfiguration
	case KindUpstream:
		return target == ErrUpstream
	}
	return false
}

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}
