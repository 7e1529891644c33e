package appointment

import (
	"time"

	"github.com/cortedigital/salon-api/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ordem do fluxo normal; cancelled fica fora da progressão
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusScheduled: 1,
	StatusConfirmed: 2,
	StatusCompleted: 3,
}

func Parse(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusRank[st]; ok {
		return st, nil
	}
	if st == StatusCancelled {
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition aplica a regra de progressão: só para frente no fluxo
// pending → scheduled → confirmed → completed. Cancelamento é tratado
// separadamente por CanCancel.
func CanTransition(from, to Status) error {
	if from.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	if to == StatusCancelled {
		return nil
	}

	fromRank, ok1 := statusRank[from]
	toRank, ok2 := statusRank[to]
	if !ok1 || !ok2 {
		return httperr.ErrBusiness("invalid_status")
	}
	if toRank <= fromRank {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel permite cancelar a partir de qualquer estado não terminal,
// desde que o horário agendado ainda não tenha passado.
func CanCancel(current Status, startsAt, now time.Time) error {
	if current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	if !startsAt.After(now) {
		return httperr.ErrBusiness("already_past")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
