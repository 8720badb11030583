package history

import "errors"

// Errors returned by history operations. They are wrapped with the offending values;
// match them with errors.Is.
var (
	// ErrPosition indicates a position outside [0, document length].
	ErrPosition = errors.New("position out of range")

	// ErrLength indicates a deletion longer than the text after its position.
	ErrLength = errors.New("length out of range")

	// ErrVersion indicates an action whose version span does not fit the history.
	ErrVersion = errors.New("version mismatch")

	// ErrRange indicates an invalid version range in a query.
	ErrRange = errors.New("invalid version range")
)
