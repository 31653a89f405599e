package telegraph

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrorKind classifies the well-known error strings the Telegraph API
// returns. Unrecognized messages map to KindUnknown; the raw message is
// always preserved on the APIError.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindFloodWait
	KindInvalidToken
	KindPageNotFound
	KindAccessDenied
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindFloodWait:
		return "flood wait"
	case KindInvalidToken:
		return "invalid token"
	case KindPageNotFound:
		return "page not found"
	case KindAccessDenied:
		return "access denied"
	default:
		return "unknown"
	}
}

// APIError is a business error reported by the Telegraph API inside an
// ok=false envelope. Message carries the exact error string from the
// service (e.g. "FLOOD_WAIT_3", "ACCESS_TOKEN_INVALID").
type APIError struct {
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return "telegraph: api error: " + e.Message
}

// Kind classifies the error message into a known kind.
func (e *APIError) Kind() ErrorKind {
	switch {
	case strings.HasPrefix(e.Message, "FLOOD_WAIT_"):
		return KindFloodWait
	case e.Message == "ACCESS_TOKEN_INVALID":
		return KindInvalidToken
	case e.Message == "PAGE_NOT_FOUND":
		return KindPageNotFound
	case e.Message == "PAGE_ACCESS_DENIED":
		return KindAccessDenied
	default:
		return KindUnknown
	}
}

// FloodWait parses a FLOOD_WAIT_<seconds> message and returns the wait
// duration the service demands. ok is false for any other message.
// The client never retries on its own; callers that want backoff use
// this to implement it.
func (e *APIError) FloodWait() (wait time.Duration, ok bool) {
	rest, found := strings.CutPrefix(e.Message, "FLOOD_WAIT_")
	if !found {
		return 0, false
	}
	seconds, err := strconv.Atoi(rest)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// HTTPError is a non-2xx HTTP response whose body did not carry a
// decodable API envelope.
type HTTPError struct {
	Status int
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("telegraph: http status %d", e.Status)
}

// DecodeError is a malformed API response: unparsable JSON, a missing
// required field, or an ok=true envelope without a result.
type DecodeError struct {
	Field  string // required field that was absent, if known
	Detail string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("telegraph: decode: missing required field %q", e.Field)
	}
	return "telegraph: decode: " + e.Detail
}

// ValidationError is a local pre-flight check failure. It is returned
// before any network I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("telegraph: invalid %s: %s", e.Field, e.Reason)
}
