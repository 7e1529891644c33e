package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/messaging"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/realtime"
)

// Service grava notificações, empurra o evento pelo websocket e publica
// o fato no broker. Implementa o Notifier dos use cases de agendamento.
type Service struct {
	db        *gorm.DB
	hub       *realtime.Hub
	publisher *messaging.RabbitPublisher
	log       *zap.Logger
}

func NewService(db *gorm.DB, hub *realtime.Hub, publisher *messaging.RabbitPublisher, log *zap.Logger) *Service {
	return &Service{db: db, hub: hub, publisher: publisher, log: log}
}

func (s *Service) Create(
	ctx context.Context,
	userID uint,
	userType string,
	notifType string,
	title string,
	message string,
	link string,
) (*models.Notification, error) {

	n := models.Notification{
		UserID:   userID,
		UserType: userType,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Link:     link,
	}

	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}

	s.Push(ctx, &n)
	s.publisher.Publish(ctx, "notification.created", n)

	return &n, nil
}

// Push entrega a notificação e o novo contador para as conexões ativas
// do destinatário. Falha de entrega em tempo real só gera log.
func (s *Service) Push(ctx context.Context, n *models.Notification) {
	room := realtime.NotificationRoom(n.UserType, n.UserID)
	s.hub.Emit(room, nil, "new_notification", n)

	count, err := s.UnreadCount(ctx, n.UserID, n.UserType)
	if err != nil {
		s.log.Warn("unread count failed", zap.Uint("user_id", n.UserID), zap.Error(err))
		return
	}
	s.hub.Emit(room, nil, "unread_count", map[string]int64{"count": count})
}

func (s *Service) UnreadCount(ctx context.Context, userID uint, userType string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND user_type = ? AND read = ?", userID, userType, false).
		Count(&count).Error
	return count, err
}

// ------------------------------------------------------
// domain/appointment.Notifier
// ------------------------------------------------------

func (s *Service) AppointmentCreated(ctx context.Context, ap *models.Appointment) {
	_, err := s.Create(ctx,
		ap.BarberID,
		models.UserTypeProfessional,
		"appointment",
		"Novo agendamento",
		fmt.Sprintf("%s agendou %s em %s às %s", ap.ClientName, ap.ServiceName, ap.Date, ap.Time),
		"/barbeiro",
	)
	if err != nil {
		s.log.Warn("appointment notification failed", zap.String("appointment", ap.ID), zap.Error(err))
	}

	s.publisher.Publish(ctx, "appointment.created", ap)
}

func (s *Service) AppointmentStatusChanged(ctx context.Context, ap *models.Appointment, previous string) {
	titles := map[string]string{
		"confirmed": "Agendamento confirmado",
		"completed": "Atendimento concluído",
		"cancelled": "Agendamento cancelado",
		"scheduled": "Agendamento atualizado",
	}
	title, ok := titles[ap.Status]
	if !ok {
		title = "Agendamento atualizado"
	}

	_, err := s.Create(ctx,
		ap.ClientID,
		models.UserTypeClient,
		"appointment",
		title,
		fmt.Sprintf("%s com %s em %s às %s", ap.ServiceName, ap.BarberName, ap.Date, ap.Time),
		"/cliente",
	)
	if err != nil {
		s.log.Warn("status notification failed", zap.String("appointment", ap.ID), zap.Error(err))
	}

	s.publisher.Publish(ctx, "appointment.status_changed", map[string]any{
		"appointment": ap,
		"previous":    previous,
	})
}

// NewReview avisa o profissional que recebeu uma avaliação.
func (s *Service) NewReview(ctx context.Context, review *models.Review, clientName string) {
	_, err := s.Create(ctx,
		review.BarberID,
		models.UserTypeProfessional,
		"review",
		"Nova avaliação",
		fmt.Sprintf("%s avaliou você com %d estrela(s)", clientName, review.Rating),
		"/barbeiro",
	)
	if err != nil {
		s.log.Warn("review notification failed", zap.Uint("review", review.ID), zap.Error(err))
	}

	s.publisher.Publish(ctx, "review.created", review)
}

// LowStock avisa o profissional quando um item cruza o limite mínimo.
func (s *Service) LowStock(ctx context.Context, item *models.InventoryItem) {
	_, err := s.Create(ctx,
		item.BarberID,
		models.UserTypeProfessional,
		"inventory",
		"Estoque baixo",
		fmt.Sprintf("%s está com apenas %d unidade(s)", item.Name, item.Quantity),
		"/barbeiro",
	)
	if err != nil {
		s.log.Warn("low stock notification failed", zap.Uint("item", item.ID), zap.Error(err))
	}
}
