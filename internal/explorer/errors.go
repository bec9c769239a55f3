package explorer

import "fmt"

// NetworkError means the remote endpoint was unreachable or the request
// failed before a body could be read. Usually transient.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("explorer request %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means the response body did not match the expected shape.
// Raw keeps the payload for diagnostics; callers must log it rather
// than discard it.
type DecodeError struct {
	URL string
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("explorer response from %s did not decode: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
