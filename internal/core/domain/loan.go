package domain

// OpKind distinguishes the two operations the loan workflow handles
type OpKind int

const (
	OpCreate OpKind = iota + 1
	OpUpdateStatus
)

// LoanOp is the tagged operation evaluated against a loan request.
// Target is only meaningful for OpUpdateStatus.
type LoanOp struct {
	Kind   OpKind
	Target Status
}

// BookEffect describes the availability mutation a decision requires
type BookEffect int

const (
	BookUnchanged BookEffect = iota
	BookHeld                 // available = false
	BookFreed                // available = true
)

// LoanSnapshot is the consistent state a decision is evaluated against.
// The caller must read it inside the same transaction that applies the
// resulting decision.
type LoanSnapshot struct {
	Status           Status // current request status, empty on create
	RequesterBlocked bool
	PendingDuplicate bool // a pending request for the same (requester, book) pair exists
	BookAvailable    bool
}

// LoanDecision is the computed outcome of a loan operation: the new request
// status, whether the return timestamp must be stamped, and the book
// availability side effect to persist in the same transaction.
type LoanDecision struct {
	Status      Status
	StampReturn bool
	Book        BookEffect
}

// legal transitions of the 4-state machine; pending is the initial state
var legalTransitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRefused},
	StatusAccepted: {StatusReturned},
}

// DecideLoan evaluates a loan operation against a state snapshot and returns
// the decision to persist, or the business error that forbids it. It is pure:
// no clock, no storage, no ambient actor.
func DecideLoan(op LoanOp, snap LoanSnapshot) (LoanDecision, error) {
	switch op.Kind {
	case OpCreate:
		if snap.RequesterBlocked {
			return LoanDecision{}, ErrAccountBlocked
		}
		if snap.PendingDuplicate {
			return LoanDecision{}, ErrDuplicatePending
		}
		return LoanDecision{Status: StatusPending}, nil

	case OpUpdateStatus:
		if _, err := ParseStatus(string(op.Target)); err != nil {
			return LoanDecision{}, err
		}
		if !transitionAllowed(snap.Status, op.Target) {
			return LoanDecision{}, ErrInvalidTransition
		}
		switch op.Target {
		case StatusAccepted:
			if !snap.BookAvailable {
				return LoanDecision{}, ErrBookUnavailable
			}
			return LoanDecision{Status: StatusAccepted, Book: BookHeld}, nil
		case StatusRefused:
			// Refusing always frees the book; idempotent when it was
			// already available.
			return LoanDecision{Status: StatusRefused, Book: BookFreed}, nil
		case StatusReturned:
			return LoanDecision{Status: StatusReturned, Book: BookFreed, StampReturn: true}, nil
		}
		return LoanDecision{}, ErrInvalidTransition
	}

	return LoanDecision{}, ErrInvalidTransition
}

func transitionAllowed(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
