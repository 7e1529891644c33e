package chat

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/models"
)

// Service concentra as regras do chat cliente ↔ profissional usadas
// tanto pelas rotas REST quanto pelo roteador de eventos WebSocket.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ConversationView é a linha da lista de conversas: a conversa mais o
// nome do interlocutor e o contador de não lidas do lado de quem pede.
type ConversationView struct {
	ID            uint      `json:"id"`
	ClientID      uint      `json:"cliente_id"`
	BarberID      uint      `json:"barbeiro_id"`
	OtherUserID   uint      `json:"other_user_id"`
	OtherUserName string    `json:"other_user_nome"`
	Unread        int       `json:"unread"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// GetOrCreateConversation devolve a conversa do par, criando na primeira
// mensagem (criação preguiçosa).
func (s *Service) GetOrCreateConversation(ctx context.Context, clientID, barberID uint) (uint, error) {
	var conv models.Conversation
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND barber_id = ?", clientID, barberID).
		First(&conv).Error
	if err == nil {
		return conv.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}

	conv = models.Conversation{
		ClientID:      clientID,
		BarberID:      barberID,
		LastMessageAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return 0, err
	}
	return conv.ID, nil
}

func (s *Service) GetConversation(ctx context.Context, conversationID uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.WithContext(ctx).First(&conv, conversationID).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// IsParticipant valida que o usuário pertence à conversa.
func (s *Service) IsParticipant(conv *models.Conversation, userID uint) bool {
	return conv.ClientID == userID || conv.BarberID == userID
}

// Recipient devolve o id do interlocutor de quem enviou.
func (s *Service) Recipient(conv *models.Conversation, senderID uint) uint {
	if conv.ClientID == senderID {
		return conv.BarberID
	}
	return conv.ClientID
}

// SendMessage persiste a mensagem, atualiza a conversa e incrementa o
// contador de não lidas do destinatário.
func (s *Service) SendMessage(
	ctx context.Context,
	conversationID uint,
	senderID uint,
	senderType string,
	body string,
) (*models.ChatMessage, *models.Conversation, error) {

	conv, err := s.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}

	msg := models.ChatMessage{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderType:     senderType,
		Body:           body,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}

		updates := map[string]any{"last_message_at": time.Now()}
		if senderType == models.UserTypeClient {
			updates["barber_unread"] = gorm.Expr("barber_unread + 1")
		} else {
			updates["client_unread"] = gorm.Expr("client_unread + 1")
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, nil, err
	}

	var sender models.User
	if err := s.db.WithContext(ctx).First(&sender, senderID).Error; err == nil {
		msg.SenderName = sender.Name
	}

	conv, _ = s.GetConversation(ctx, conversationID)
	return &msg, conv, nil
}

// MarkRead marca as mensagens recebidas como lidas e zera o contador do
// lado do leitor.
func (s *Service) MarkRead(ctx context.Context, conversationID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ChatMessage{}).
			Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, userID, false).
			Update("read", true).Error; err != nil {
			return err
		}

		var conv models.Conversation
		if err := tx.First(&conv, conversationID).Error; err != nil {
			return err
		}

		column := "barber_unread"
		if conv.ClientID == userID {
			column = "client_unread"
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update(column, 0).Error
	})
}

func (s *Service) ListMessages(ctx context.Context, conversationID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var msgs []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	s.fillSenderNames(ctx, msgs)
	return msgs, nil
}

func (s *Service) fillSenderNames(ctx context.Context, msgs []models.ChatMessage) {
	ids := make([]uint, 0, len(msgs))
	seen := make(map[uint]bool)
	for _, m := range msgs {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			ids = append(ids, m.SenderID)
		}
	}
	if len(ids) == 0 {
		return
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return
	}

	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i := range msgs {
		msgs[i].SenderName = names[msgs[i].SenderID]
	}
}

func (s *Service) ListConversations(ctx context.Context, userID uint, userType string) ([]ConversationView, error) {
	var convs []models.Conversation
	q := s.db.WithContext(ctx)
	if userType == models.UserTypeClient {
		q = q.Where("client_id = ?", userID)
	} else {
		q = q.Where("barber_id = ?", userID)
	}
	if err := q.Order("last_message_at DESC").Find(&convs).Error; err != nil {
		return nil, err
	}

	views := make([]ConversationView, 0, len(convs))
	for _, conv := range convs {
		otherID := s.Recipient(&conv, userID)

		var other models.User
		_ = s.db.WithContext(ctx).First(&other, otherID).Error

		var last models.ChatMessage
		_ = s.db.WithContext(ctx).
			Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").
			First(&last).Error

		views = append(views, ConversationView{
			ID:            conv.ID,
			ClientID:      conv.ClientID,
			BarberID:      conv.BarberID,
			OtherUserID:   otherID,
			OtherUserName: other.Name,
			Unread:        conv.UnreadFor(userID),
			LastMessage:   last.Body,
			LastMessageAt: conv.LastMessageAt,
		})
	}

	return views, nil
}

func (s *Service) TotalUnread(ctx context.Context, userID uint, userType string) (int, error) {
	column := "barber_unread"
	idColumn := "barber_id"
	if userType == models.UserTypeClient {
		column = "client_unread"
		idColumn = "client_id"
	}

	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where(idColumn+" = ?", userID).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	return int(total), err
}

// AvailableUsers lista com quem o usuário pode iniciar conversa:
// clientes veem profissionais e vice-versa.
func (s *Service) AvailableUsers(ctx context.Context, userType string) ([]models.User, error) {
	target := models.UserTypeProfessional
	if userType == models.UserTypeProfessional {
		target = models.UserTypeClient
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Where("type = ?", target).
		Order("name ASC").
		Find(&users).Error
	return users, err
}
