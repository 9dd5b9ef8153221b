package service

import (
	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
)

// transitions is the membership status machine: unpaid and paid are the only
// states, and each may be reached from the other (payment or admin upgrade,
// admin downgrade or lapsed expiry). There are no terminal states.
var transitions = map[model.MembershipStatus]map[model.MembershipStatus]bool{
	model.StatusUnpaid: {model.StatusPaid: true},
	model.StatusPaid:   {model.StatusUnpaid: true},
}

// Transition resolves a membership status change. A transition to the current
// status is a no-op returning the current state, not an error. Unknown status
// values and unreachable targets fail with ErrInvalidTransition.
func Transition(current, target model.MembershipStatus) (model.MembershipStatus, error) {
	if !current.Valid() || !target.Valid() {
		return current, errors.ErrInvalidTransition
	}
	if current == target {
		return current, nil
	}
	if !transitions[current][target] {
		return current, errors.ErrInvalidTransition
	}
	return target, nil
}
