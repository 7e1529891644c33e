package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/cortedigital/salon-api/internal/config"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/models"
)

// Gateway cria preferências de checkout no MercadoPago para agendamentos.
// Instância nil significa pagamentos desabilitados (sem access token).
type Gateway struct {
	client preference.Client
	cb     *gobreaker.CircuitBreaker
	log    *zap.Logger
}

func NewGateway(accessToken string, log *zap.Logger) (*Gateway, error) {
	if accessToken == "" {
		return nil, nil
	}

	mpCfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Gateway{
		client: preference.NewClient(mpCfg),
		cb:     config.NewCircuitBreaker("MercadoPago"),
		log:    log,
	}, nil
}

// CreateBookingPreference devolve a URL de checkout do agendamento.
func (g *Gateway) CreateBookingPreference(ctx context.Context, ap *models.Appointment) (string, error) {
	if g == nil {
		return "", httperr.ErrBusiness("payments_disabled")
	}

	res, err := g.cb.Execute(func() (any, error) {
		return g.client.Create(ctx, preference.Request{
			ExternalReference: ap.ID,
			Items: []preference.ItemRequest{
				{
					ID:          fmt.Sprintf("%d", ap.ServiceID),
					Title:       ap.ServiceName,
					Description: fmt.Sprintf("%s com %s em %s às %s", ap.ServiceName, ap.BarberName, ap.Date, ap.Time),
					Quantity:    1,
					UnitPrice:   ap.TotalPrice,
				},
			},
		})
	})
	if err != nil {
		g.log.Warn("mercadopago preference failed", zap.String("appointment", ap.ID), zap.Error(err))
		return "", httperr.ErrBusiness("payment_unavailable")
	}

	pref := res.(*preference.Response)
	return pref.InitPoint, nil
}
