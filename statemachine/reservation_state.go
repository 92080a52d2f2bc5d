package statemachine

import (
	"errors"

	"dinedash-api/models"
)

// ReservationTransition defines a valid reservation state change and its actor
type ReservationTransition struct {
	From  models.ReservationStatus
	To    models.ReservationStatus
	Actor string
}

// PENDING_PAYMENT→CONFIRMED belongs to the payment reconciliation path only
// ("system"); restaurants cannot confirm an unpaid reservation by hand.
var validReservationTransitions = []ReservationTransition{
	{From: models.ReservationPendingPayment, To: models.ReservationConfirmed, Actor: "system"},
	{From: models.ReservationPendingPayment, To: models.ReservationCancelled, Actor: "restaurant"},
	{From: models.ReservationPendingPayment, To: models.ReservationCancelled, Actor: "customer"},
	{From: models.ReservationConfirmed, To: models.ReservationSeated, Actor: "restaurant"},
	{From: models.ReservationConfirmed, To: models.ReservationCancelled, Actor: "restaurant"},
	{From: models.ReservationConfirmed, To: models.ReservationCancelled, Actor: "customer"},
	{From: models.ReservationConfirmed, To: models.ReservationNoShow, Actor: "restaurant"},
	{From: models.ReservationSeated, To: models.ReservationCompleted, Actor: "restaurant"},
}

type reservationKey struct {
	From  models.ReservationStatus
	To    models.ReservationStatus
	Actor string
}

var reservationTransitionMap = func() map[reservationKey]bool {
	m := make(map[reservationKey]bool)
	for _, t := range validReservationTransitions {
		m[reservationKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidReservationTransitionsFrom returns all valid next states from a state
func ValidReservationTransitionsFrom(status models.ReservationStatus) []models.ReservationStatus {
	var nexts []models.ReservationStatus
	seen := map[models.ReservationStatus]bool{}
	for _, t := range validReservationTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransitionReservation checks if an actor can move a reservation between states
func CanTransitionReservation(from, to models.ReservationStatus, actor string) error {
	if reservationTransitionMap[reservationKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			" is not allowed for actor '" + actor + "'",
	)
}
