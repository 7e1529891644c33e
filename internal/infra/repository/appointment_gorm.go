package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

// -------- Users --------

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	userID uint,
) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// -------- Catalog --------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, serviceID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AppointmentGormRepository) GetBarberPrice(
	ctx context.Context,
	barberID uint,
	serviceName string,
) (float64, bool, error) {
	var bp models.BarberPrice
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND service_name = ?", barberID, serviceName).
		First(&bp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return bp.Price, true, nil
}

// -------- Appointment --------

// NextAppointmentID gera ids sequenciais no formato APT00001, preservando
// o esquema de chaves do sistema original.
func (r *AppointmentGormRepository) NextAppointmentID(ctx context.Context) (string, error) {
	var last models.Appointment
	err := r.db.WithContext(ctx).
		Where("id LIKE ?", "APT%").
		Order("id DESC").
		First(&last).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "APT00001", nil
		}
		return "", err
	}

	seq, err := strconv.Atoi(strings.TrimPrefix(last.ID, "APT"))
	if err != nil {
		return "", fmt.Errorf("malformed appointment id %q: %w", last.ID, err)
	}

	return fmt.Sprintf("APT%05d", seq+1), nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// -------- Listing --------

func (r *AppointmentGormRepository) ListForBarberOnDate(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Appointment, error) {
	var aps []models.Appointment
	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Order("date ASC, time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListOverdue(
	ctx context.Context,
	today string,
	nowHM string,
) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(domain.StatusPending),
			string(domain.StatusScheduled),
			string(domain.StatusConfirmed),
		}).
		Where("date < ? OR (date = ? AND time <= ?)", today, today, nowHM).
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}
