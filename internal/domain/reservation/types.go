package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusDeclined, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HoldsCapacity reports whether the reservation counts against slot capacity.
func (s Status) HoldsCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

// BlocksDuplicate reports whether the reservation counts for the duplicate window.
func (s Status) BlocksDuplicate() bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusDeclined:
		return false
	default:
		return true
	}
}

// PredecessorsOf lists the states from which next is reachable.
func PredecessorsOf(next Status) []Status {
	var out []Status
	for _, from := range []Status{StatusPending, StatusConfirmed} {
		if from.CanTransitionTo(next) {
			out = append(out, from)
		}
	}
	return out
}

func CapacityStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

func DuplicateStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCompleted}
}
