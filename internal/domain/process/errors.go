package process

import "errors"

var (
	// ErrInvalidFilter indicates a malformed listing filter, such as an
	// unparseable date bound or a negative page size.
	ErrInvalidFilter = errors.New("invalid record filter")
)
