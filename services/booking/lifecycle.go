package booking

import "pizzeria/models"

var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
}

// ValidStatus reports whether s is one of the four booking states.
func ValidStatus(s models.BookingStatus) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s models.BookingStatus) bool {
	return s == models.StatusCompleted || s == models.StatusCancelled
}

// CanTransition reports whether a booking in from may move to to. Staying put is always allowed.
func CanTransition(from, to models.BookingStatus) bool {
	if from == to {
		return ValidStatus(to)
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
