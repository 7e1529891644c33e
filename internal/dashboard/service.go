package dashboard

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/cache"
	"github.com/cortedigital/salon-api/internal/dto"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/timezone"
)

// CacheTTL segue o ritmo de atualização do painel no navegador.
const CacheTTL = 30 * time.Second

type Service struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewService(db *gorm.DB, c *cache.Cache) *Service {
	return &Service{db: db, cache: c}
}

func clientCacheKey(userID uint) string {
	return fmt.Sprintf("dashboard:client:%d", userID)
}

func professionalCacheKey(userID uint) string {
	return fmt.Sprintf("dashboard:professional:%d", userID)
}

// Invalidate descarta o painel em cache dos dois lados de um agendamento.
func (s *Service) Invalidate(ctx context.Context, clientID, barberID uint) {
	s.cache.Delete(ctx, clientCacheKey(clientID), professionalCacheKey(barberID))
}

func (s *Service) ForClient(ctx context.Context, user *models.User) (*dto.ClientDashboard, error) {
	key := clientCacheKey(user.ID)

	var cached dto.ClientDashboard
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	now := timezone.Now()
	today := now.Format("2006-01-02")
	nowHM := now.Format("15:04")

	var upcoming []models.Appointment
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND status IN ?", user.ID, activeStatuses).
		Where("date > ? OR (date = ? AND time >= ?)", today, today, nowHM).
		Order("date ASC, time ASC").
		Limit(5).
		Find(&upcoming).Error
	if err != nil {
		return nil, err
	}

	var history []models.Appointment
	err = s.db.WithContext(ctx).
		Where("client_id = ? AND status IN ?", user.ID, []string{"completed", "cancelled"}).
		Order("date DESC, time DESC").
		Limit(5).
		Find(&history).Error
	if err != nil {
		return nil, err
	}

	var total int64
	err = s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ?", user.ID).
		Count(&total).Error
	if err != nil {
		return nil, err
	}

	var spent float64
	err = s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ? AND status = ?", user.ID, "completed").
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&spent).Error
	if err != nil {
		return nil, err
	}

	result := &dto.ClientDashboard{
		User:                 user,
		UpcomingAppointments: upcoming,
		RecentHistory:        history,
		Stats: dto.ClientStats{
			TotalAppointments: total,
			TotalSpent:        spent,
			UpcomingCount:     len(upcoming),
		},
	}

	s.cache.SetJSON(ctx, key, result, CacheTTL)
	return result, nil
}

func (s *Service) ForProfessional(ctx context.Context, user *models.User) (*dto.ProfessionalDashboard, error) {
	key := professionalCacheKey(user.ID)

	var cached dto.ProfessionalDashboard
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	now := timezone.Now()
	today := now.Format("2006-01-02")
	monthStart := now.Format("2006-01") + "-01"

	var todays []models.Appointment
	err := s.db.WithContext(ctx).
		Where("barber_id = ? AND date = ? AND status <> ?", user.ID, today, "cancelled").
		Order("time ASC").
		Find(&todays).Error
	if err != nil {
		return nil, err
	}

	todayRevenue, todayClients, err := s.revenueSince(ctx, user.ID, today)
	if err != nil {
		return nil, err
	}
	monthRevenue, monthClients, err := s.revenueSince(ctx, user.ID, monthStart)
	if err != nil {
		return nil, err
	}

	result := &dto.ProfessionalDashboard{
		User:              user,
		TodayAppointments: todays,
		Stats: dto.ProfessionalStats{
			TodayRevenue: todayRevenue,
			MonthRevenue: monthRevenue,
			TodayClients: todayClients,
			MonthClients: monthClients,
			Rating:       user.Rating,
		},
	}

	s.cache.SetJSON(ctx, key, result, CacheTTL)
	return result, nil
}

var activeStatuses = []string{"pending", "scheduled", "confirmed"}

// revenueSince soma o faturamento concluído e conta clientes distintos a
// partir de uma data (inclusive).
func (s *Service) revenueSince(ctx context.Context, barberID uint, since string) (float64, int64, error) {
	base := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND status = ? AND date >= ?", barberID, "completed", since)

	var revenue float64
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue).Error; err != nil {
		return 0, 0, err
	}

	var clients int64
	if err := base.Session(&gorm.Session{}).
		Distinct("client_id").
		Count(&clients).Error; err != nil {
		return 0, 0, err
	}

	return revenue, clients, nil
}
