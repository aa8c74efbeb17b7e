package domain

// MutationOutcome reports what a checklist mutation did. Only OutcomeApplied
// changes state.
type MutationOutcome string

const (
	OutcomeApplied          MutationOutcome = "APPLIED"
	OutcomeUnchanged        MutationOutcome = "UNCHANGED"
	OutcomeRequestNotFound  MutationOutcome = "REQUEST_NOT_FOUND"
	OutcomeTaskNotFound     MutationOutcome = "TASK_NOT_FOUND"
	OutcomePermissionDenied MutationOutcome = "PERMISSION_DENIED"
)

// Changed reports whether the mutation altered the stored request.
func (o MutationOutcome) Changed() bool {
	return o == OutcomeApplied
}
