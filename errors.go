package pulse

import "errors"

// Sentinel errors returned by the Monitor.
var (
	// ErrKeepAliveRequired is returned when Start is called with nil keep-alive data.
	ErrKeepAliveRequired = errors.New("keep-alive data is required")

	// ErrConnectionRequired is returned when Start is called with a nil connection.
	ErrConnectionRequired = errors.New("connection is required")
)
