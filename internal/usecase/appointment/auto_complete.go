package appointment

import (
	"context"

	"github.com/cortedigital/salon-api/internal/audit"
	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/timezone"
)

// AutoComplete marca como concluídos os agendamentos ativos cujo horário
// já passou. O original rodava essa varredura antes de cada requisição;
// aqui ela é disparada pelo endpoint manual e por um ticker no main.
type AutoComplete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAutoComplete(repo domain.Repository, audit *audit.Dispatcher) *AutoComplete {
	return &AutoComplete{repo: repo, audit: audit}
}

func (uc *AutoComplete) Execute(ctx context.Context) (int, error) {
	now := timezone.Now()
	today := now.Format("2006-01-02")
	nowHM := now.Format("15:04")

	overdue, err := uc.repo.ListOverdue(ctx, today, nowHM)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range overdue {
		ap := &overdue[i]
		if err := domain.CanTransition(domain.Status(ap.Status), domain.StatusCompleted); err != nil {
			continue
		}

		ap.Status = string(domain.StatusCompleted)
		ap.CompletedAt = &now
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			continue
		}

		uc.audit.Dispatch(audit.Event{
			Action:   "appointment_auto_completed",
			Entity:   "appointment",
			EntityID: ap.ID,
		})
		updated++
	}

	return updated, nil
}
