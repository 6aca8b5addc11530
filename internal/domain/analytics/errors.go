package analytics

import "errors"

var (
	// ErrInvalidMetric indicates an unrecognized metric name at the query
	// boundary.
	ErrInvalidMetric = errors.New("invalid metric")
	// ErrInvalidDate indicates an unparseable date bound at the query
	// boundary.
	ErrInvalidDate = errors.New("invalid date filter")
)
