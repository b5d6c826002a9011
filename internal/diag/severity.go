package diag

// Severity ranks a diagnostic. The engine emits SevError for every violated
// invariant; the lower levels exist for hosts that downgrade individual
// codes and for informational output.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String returns the uppercase label used in rendered output.
func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	case SevInfo:
		return "INFO"
	}
	return "UNKNOWN"
}
