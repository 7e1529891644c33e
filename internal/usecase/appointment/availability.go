package appointment

import (
	"context"
	"time"

	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute monta a grade de slots de 30 minutos de um profissional em uma
// data, marcando como indisponíveis os já ocupados e os que ficaram no
// passado.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID uint,
	dateStr string,
) ([]domain.Slot, error) {

	loc := timezone.Location()
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	sameDay, err := uc.repo.ListForBarberOnDate(ctx, barberID, dateStr)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]bool, len(sameDay))
	for _, ap := range sameDay {
		if ap.Status != string(domain.StatusCancelled) {
			occupied[ap.Time] = true
		}
	}

	return domain.Slots(date, occupied, timezone.Now()), nil
}
