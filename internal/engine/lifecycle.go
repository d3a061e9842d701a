package engine

// AccessState classifies why a learner can or cannot reach a lecture test.
// Terminal policy outcomes are states, not errors, so callers can render an
// explanation instead of an error banner.
type AccessState string

const (
	StateNotPublished AccessState = "not_published"
	StateNoTestYet    AccessState = "no_test_yet"
	StateTestReady    AccessState = "test_ready"
	StateExhausted    AccessState = "exhausted"
	StateExpired      AccessState = "expired"
)

// DenialReason is returned by the test-creation collaborator when it
// independently rejects a creation request for policy reasons.
type DenialReason string

const (
	DenialDeadlinePassed    DenialReason = "deadline_passed"
	DenialAttemptsExhausted DenialReason = "attempts_exhausted"
)

// CreationDenied is an expected terminal outcome of a creation request, not
// a fault.
type CreationDenied struct {
	Reason DenialReason
}

// Access is the evaluated position of one (lecture, learner) pair.
type Access struct {
	State    AccessState
	Ledger   Ledger
	Deadline DeadlineInfo
}

// CanAttempt reports whether a submission is currently allowed.
func (a Access) CanAttempt() bool {
	return a.State == StateTestReady && a.Ledger.CanAttempt(a.Deadline.Passed)
}

// ClassifyAccess derives the access state from already-fetched data. When
// both the deadline has passed and attempts are exhausted, the deadline wins
// the narrative: the state is Expired, though either condition alone blocks
// new attempts.
func ClassifyAccess(published, generateTest, testExists bool, ledger Ledger, deadline DeadlineInfo) Access {
	a := Access{Ledger: ledger, Deadline: deadline}

	switch {
	case !published || !generateTest:
		a.State = StateNotPublished
	case deadline.Passed:
		a.State = StateExpired
	case ledger.RemainingAttempts == 0:
		a.State = StateExhausted
	case !testExists:
		a.State = StateNoTestYet
	default:
		a.State = StateTestReady
	}
	return a
}

// ResolveDenial maps a creation denial onto the resulting terminal state.
func ResolveDenial(denied CreationDenied) AccessState {
	if denied.Reason == DenialAttemptsExhausted {
		return StateExhausted
	}
	return StateExpired
}
