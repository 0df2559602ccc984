package domain

import "strings"

// Status is the compliance status of a paid order. The values keep the
// legacy French vocabulary so persisted rows and exports stay compatible
// with data produced by the original dashboard.
type Status string

const (
	StatusOnTime Status = "Dans les délais"
	StatusLate   Status = "En retard"
)

var statusLabels = map[string]Status{
	"dans les délais": StatusOnTime,
	"on_time":         StatusOnTime,
	"en retard":       StatusLate,
	"late":            StatusLate,
}

// ParseStatus returns the status for a stored or user-supplied label
// (case-insensitive). The second return is false for unknown labels.
func ParseStatus(label string) (Status, bool) {
	s, ok := statusLabels[strings.ToLower(strings.TrimSpace(label))]
	return s, ok
}

func (s Status) String() string { return string(s) }
