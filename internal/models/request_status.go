package models

// Statuses shared by resident-submitted requests (complaints, maintenance, vehicles)
const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "in_progress"
	RequestStatusResolved   = "resolved"
	RequestStatusRejected   = "rejected"
	RequestStatusApproved   = "approved"
)

// ActiveRequestStatuses are the statuses that block a new submission of the
// same request type by the same resident.
var ActiveRequestStatuses = []string{RequestStatusPending, RequestStatusInProgress}

// RequestStatusLabels maps a stored status to its presentation label. The
// lookup is explicit so a new status can never silently produce an unstyled
// variant.
var RequestStatusLabels = map[string]string{
	RequestStatusPending:    "Pending",
	RequestStatusInProgress: "In Progress",
	RequestStatusResolved:   "Resolved",
	RequestStatusRejected:   "Rejected",
	RequestStatusApproved:   "Approved",
}

// RequestStatusLabel returns the presentation label for a status, falling
// back to the raw value for unknown statuses.
func RequestStatusLabel(status string) string {
	if label, ok := RequestStatusLabels[status]; ok {
		return label
	}
	return status
}
