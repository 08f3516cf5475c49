package reservation

// FlowState is the guest's position in the reservation submission workflow
// for a single browsing session.
type FlowState string

const (
	// FlowBrowsing: guest is looking at the room list.
	FlowBrowsing FlowState = "browsing"
	// FlowChecking: a single-room availability re-check is in flight.
	FlowChecking FlowState = "checking"
	// FlowFormOpen: re-check passed, booking form is open with draft data.
	FlowFormOpen FlowState = "form_open"
	// FlowSubmitting: the booking request has been sent; the submit control
	// stays disabled until the collaborator answers.
	FlowSubmitting FlowState = "submitting"
	// FlowConfirmed: the collaborator accepted; the draft is discarded.
	FlowConfirmed FlowState = "confirmed"
	// FlowRejected: the re-check or the collaborator said no.
	FlowRejected FlowState = "rejected"
)

// flowTransitions defines the reservation submission state machine. Rejected
// is not terminal: an availability conflict sends the guest back to browsing
// after a bulk refresh, and a submission failure reopens the form with the
// draft retained. Every retry is guest-initiated; nothing here retries on
// its own.
var flowTransitions = map[FlowState][]FlowState{
	FlowBrowsing:   {FlowChecking},
	FlowChecking:   {FlowFormOpen, FlowRejected},
	FlowFormOpen:   {FlowSubmitting, FlowBrowsing},
	FlowSubmitting: {FlowConfirmed, FlowRejected},
	FlowRejected:   {FlowBrowsing, FlowFormOpen},
	FlowConfirmed:  {},
}

// IsValid returns true if the state is recognized.
func (s FlowState) IsValid() bool {
	_, exists := flowTransitions[s]
	return exists
}

// CanTransitionTo returns true if the workflow may move from this state to
// the target.
func (s FlowState) CanTransitionTo(target FlowState) bool {
	allowed, exists := flowTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the session workflow is finished.
func (s FlowState) IsTerminal() bool {
	allowed, exists := flowTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the state.
func (s FlowState) String() string {
	return string(s)
}
