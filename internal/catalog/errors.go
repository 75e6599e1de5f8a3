package catalog

import "fmt"

// FetchError reports a transport failure or non-2xx response while
// retrieving metadata or a band file. Fetch errors are retried up to the
// loader's retry budget before becoming terminal.
type FetchError struct {
	URL    string
	Status int // 0 when the transport itself failed
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports malformed JSON or a schema mismatch in a fetched
// document. Treated identically to FetchError for retry purposes.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
