package booking

// Status is the booking lifecycle status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Helper methods for Status
func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPaid, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is legal from this status.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

// CanApprove returns true if an administrator may approve or reject from this status.
func (s Status) CanApprove() bool {
	return s == StatusPending
}

// CanCancel returns true if the requester may cancel from this status.
func (s Status) CanCancel() bool {
	return s == StatusPending
}

// CanAttachEvidence returns true if payment evidence may be uploaded from this status.
// The caller must additionally check that the booking carries a nonzero approved
// cost and has no prior evidence.
func (s Status) CanAttachEvidence() bool {
	return s == StatusApproved
}

// CanMarkPaid returns true if the booking may move to paid from this status.
func (s Status) CanMarkPaid() bool {
	return s == StatusApproved
}

// CanComplete returns true if the booking may be marked completed from this status.
func (s Status) CanComplete() bool {
	return s == StatusPaid
}

// AcceptsFeedback returns true if feedback may be submitted for this status.
func (s Status) AcceptsFeedback() bool {
	return s == StatusPaid || s == StatusCompleted
}

// CanTransition reports whether the status machine permits moving to next.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCancelled
	case StatusApproved:
		return next == StatusPaid
	case StatusPaid:
		return next == StatusCompleted
	default:
		return false
	}
}

// GetAllStatuses returns all valid booking statuses
func GetAllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusApproved,
		StatusRejected,
		StatusPaid,
		StatusCompleted,
		StatusCancelled,
	}
}
