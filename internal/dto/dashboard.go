package dto

import "github.com/cortedigital/salon-api/internal/models"

type ClientStats struct {
	TotalAppointments int64   `json:"total_appointments"`
	TotalSpent        float64 `json:"total_spent"`
	UpcomingCount     int     `json:"upcoming_count"`
}

type ClientDashboard struct {
	User                 *models.User         `json:"user"`
	UpcomingAppointments []models.Appointment `json:"upcoming_appointments"`
	RecentHistory        []models.Appointment `json:"recent_history"`
	Stats                ClientStats          `json:"stats"`
}

type ProfessionalStats struct {
	TodayRevenue float64 `json:"today_revenue"`
	MonthRevenue float64 `json:"month_revenue"`
	TodayClients int64   `json:"today_clients"`
	MonthClients int64   `json:"month_clients"`
	Rating       float64 `json:"rating"`
}

type ProfessionalDashboard struct {
	User              *models.User         `json:"user"`
	TodayAppointments []models.Appointment `json:"today_appointments"`
	Stats             ProfessionalStats    `json:"stats"`
}
