package bookings

import "fmt"

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// activeStatuses hold a vendor's time slot
var activeStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress}

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusInProgress: true,
		StatusCancelled:  true,
	},
	StatusInProgress: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status %q", s)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s Status) IsActive() bool {
	for _, active := range activeStatuses {
		if s == active {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(allowedTransitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

// ValidateTransition returns a *TransitionError for edges outside the table
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
