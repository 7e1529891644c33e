package reviews

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/models"
)

// Service concentra as regras de avaliação: uma por agendamento
// concluído, só pelo próprio cliente, com a média refletida no perfil
// do profissional.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Summary agrega as avaliações de um profissional por estrela.
type Summary struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	FiveStars     int     `json:"five_stars"`
	FourStars     int     `json:"four_stars"`
	ThreeStars    int     `json:"three_stars"`
	TwoStars      int     `json:"two_stars"`
	OneStar       int     `json:"one_star"`
}

// Summarize monta o resumo a partir das avaliações já carregadas.
// Média arredondada para uma casa decimal.
func Summarize(rs []models.Review) Summary {
	s := Summary{TotalReviews: len(rs)}
	if len(rs) == 0 {
		return s
	}

	sum := 0
	for _, r := range rs {
		sum += r.Rating
		switch r.Rating {
		case 5:
			s.FiveStars++
		case 4:
			s.FourStars++
		case 3:
			s.ThreeStars++
		case 2:
			s.TwoStars++
		case 1:
			s.OneStar++
		}
	}

	s.AverageRating = math.Round(float64(sum)/float64(len(rs))*10) / 10
	return s
}

// Create valida que o agendamento pertence ao cliente, está concluído e
// ainda não foi avaliado, e devolve a avaliação criada com o perfil do
// profissional já recalculado.
func (s *Service) Create(
	ctx context.Context,
	clientID uint,
	appointmentID string,
	rating int,
	comment string,
) (*models.Review, error) {

	if !models.IsRatingValid(rating) {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	var ap models.Appointment
	err := s.db.WithContext(ctx).
		Where("id = ? AND client_id = ? AND status = ?", appointmentID, clientID, "completed").
		First(&ap).Error
	if err != nil {
		return nil, httperr.ErrBusiness("cannot_review")
	}

	var existing models.Review
	err = s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&existing).Error
	if err == nil {
		return nil, httperr.ErrBusiness("already_reviewed")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	review := models.Review{
		AppointmentID: appointmentID,
		BarberID:      ap.BarberID,
		ClientID:      clientID,
		Rating:        rating,
		Comment:       comment,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, err
	}

	if err := s.recalcBarberRating(ctx, ap.BarberID); err != nil {
		return nil, err
	}

	review.ClientName = ap.ClientName
	return &review, nil
}

func (s *Service) Update(
	ctx context.Context,
	reviewID uint,
	clientID uint,
	rating int,
	comment string,
) (*models.Review, error) {

	if !models.IsRatingValid(rating) {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	var review models.Review
	err := s.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", reviewID, clientID).
		First(&review).Error
	if err != nil {
		return nil, httperr.ErrBusiness("review_not_found")
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.db.WithContext(ctx).Save(&review).Error; err != nil {
		return nil, err
	}

	if err := s.recalcBarberRating(ctx, review.BarberID); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Service) Delete(ctx context.Context, reviewID, clientID uint) error {
	var review models.Review
	err := s.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", reviewID, clientID).
		First(&review).Error
	if err != nil {
		return httperr.ErrBusiness("review_not_found")
	}

	if err := s.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return err
	}
	return s.recalcBarberRating(ctx, review.BarberID)
}

// recalcBarberRating reflete a média das avaliações no perfil do
// profissional. Sem avaliações o perfil volta ao padrão 5.
func (s *Service) recalcBarberRating(ctx context.Context, barberID uint) error {
	var rs []models.Review
	err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Find(&rs).Error
	if err != nil {
		return err
	}

	rating := 5.0
	if len(rs) > 0 {
		rating = Summarize(rs).AverageRating
	}

	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", barberID).
		Update("rating", rating).Error
}

// ForBarber lista as avaliações recebidas e o resumo por estrela.
func (s *Service) ForBarber(ctx context.Context, barberID uint, limit int) ([]models.Review, Summary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var all []models.Review
	err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Find(&all).Error
	if err != nil {
		return nil, Summary{}, err
	}

	summary := Summarize(all)

	page := all
	if len(page) > limit {
		page = page[:limit]
	}
	s.fillNames(ctx, page, true)

	return page, summary, nil
}

// ForClient lista as avaliações feitas pelo cliente.
func (s *Service) ForClient(ctx context.Context, clientID uint) ([]models.Review, error) {
	var rs []models.Review
	err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&rs).Error
	if err != nil {
		return nil, err
	}

	s.fillNames(ctx, rs, false)
	return rs, nil
}

// Pending lista os agendamentos concluídos do cliente que ainda não
// foram avaliados.
func (s *Service) Pending(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND status = ?", clientID, "completed").
		Where("id NOT IN (?)",
			s.db.Model(&models.Review{}).Select("appointment_id").Where("client_id = ?", clientID),
		).
		Order("date DESC, time DESC").
		Limit(10).
		Find(&aps).Error
	return aps, err
}

// TopRated lista os profissionais com ao menos uma avaliação, por média.
type RatedBarber struct {
	ID            uint    `json:"id"`
	Name          string  `json:"nome"`
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
}

func (s *Service) TopRated(ctx context.Context, limit int) ([]RatedBarber, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var out []RatedBarber
	err := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("users.id AS id, users.name AS name, COUNT(reviews.id) AS total_reviews, ROUND(AVG(reviews.rating)::numeric, 1) AS average_rating").
		Joins("JOIN users ON users.id = reviews.barber_id").
		Group("users.id, users.name").
		Order("average_rating DESC, total_reviews DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// fillNames carrega o nome do interlocutor (cliente ou profissional).
func (s *Service) fillNames(ctx context.Context, rs []models.Review, clientSide bool) {
	ids := make([]uint, 0, len(rs))
	seen := make(map[uint]bool)
	for _, r := range rs {
		id := r.ClientID
		if !clientSide {
			id = r.BarberID
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
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
	for i := range rs {
		if clientSide {
			rs[i].ClientName = names[rs[i].ClientID]
		} else {
			rs[i].BarberName = names[rs[i].BarberID]
		}
	}
}
