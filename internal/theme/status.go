package theme

// Status is the derived readiness of a theme.
type Status string

const (
	StatusReady       Status = "ready"
	StatusNeedsUpdate Status = "needs-update"
	StatusNoDID       Status = "no-did"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{StatusReady, StatusNeedsUpdate, StatusNoDID}

// DeriveStatus maps a theme DID to its status. A theme still carrying the
// base template's DID needs a fresh one before it can be launched.
func DeriveStatus(did, baseDID string) Status {
	switch {
	case did == "":
		return StatusNoDID
	case did == baseDID:
		return StatusNeedsUpdate
	default:
		return StatusReady
	}
}

// NeedsDIDUpdate reports whether the status calls for a new DID.
func (s Status) NeedsDIDUpdate() bool {
	return s != StatusReady
}

// Label returns a human-readable label.
func (s Status) Label() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusNeedsUpdate:
		return "Needs DID update"
	case StatusNoDID:
		return "No DID"
	default:
		return string(s)
	}
}

// ParseStatus validates a status name from user input.
func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
