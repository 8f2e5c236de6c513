package mnemoreg

// OverwritePolicy governs whether writing to an existing key is an error.
type OverwritePolicy int

const (
	// Forbid rejects writes to existing keys with ErrAlreadyRegistered.
	// This is the default.
	Forbid OverwritePolicy = iota

	// Allow silently overwrites existing keys.
	Allow

	// Warn overwrites existing keys but logs a warning for each overwrite.
	Warn
)

// Valid reports whether p is within the enumerated range.
func (p OverwritePolicy) Valid() bool {
	return p >= Forbid && p <= Warn
}

// String returns the policy name.
func (p OverwritePolicy) String() string {
	switch p {
	case Forbid:
		return "forbid"
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	default:
		return "unknown"
	}
}
