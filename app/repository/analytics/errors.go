package repository

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies why a backend call failed.
type ErrorKind int

const (
	// KindTransport: the request never produced an HTTP response.
	KindTransport ErrorKind = iota + 1
	// KindStatus: non-2xx status with an {error} body.
	KindStatus
	// KindStatusUnparseable: non-2xx status whose body carried no usable message.
	KindStatusUnparseable
	// KindUnsuccessful: 2xx status but success:false in the payload.
	KindUnsuccessful
	// KindMalformed: 2xx status with a body that is not the expected JSON.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindStatusUnparseable:
		return "status_unparseable"
	case KindUnsuccessful:
		return "unsuccessful"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// APIError carries a user-facing message; Err keeps the underlying cause.
type APIError struct {
	Kind     ErrorKind
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// ErrNoFile is returned by UploadFile when nothing was selected.
var ErrNoFile = errors.New("no file selected")

// KindOf returns the kind of an *APIError anywhere in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}
