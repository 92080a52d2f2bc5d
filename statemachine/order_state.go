package statemachine

import (
	"errors"

	"dinedash-api/models"
)

// Transition defines a valid order state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "restaurant", "customer", "system"
}

// validTransitions is the authoritative order state machine definition.
// Admin overrides bypass this table entirely.
var validTransitions = []Transition{
	{From: models.StatusPlaced, To: models.StatusAccepted, Actor: "restaurant"},
	{From: models.StatusPlaced, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusPlaced, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusAccepted, To: models.StatusPreparing, Actor: "restaurant"},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery, Actor: "restaurant"},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: "restaurant"},
}

// etaMinutes maps each status the restaurant can move an order into to a
// fresh delivery estimate counted from the moment of the transition.
var etaMinutes = map[models.OrderStatus]int{
	models.StatusAccepted:       35,
	models.StatusPreparing:      25,
	models.StatusOutForDelivery: 15,
	models.StatusDelivered:      0,
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move an order between states
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

// ETAMinutes returns the delivery estimate for a status, and whether the
// status carries one.
func ETAMinutes(status models.OrderStatus) (int, bool) {
	m, ok := etaMinutes[status]
	return m, ok
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
