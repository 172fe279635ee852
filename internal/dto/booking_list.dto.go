package dto

import "time"

type BookingListDTO struct {
	ID            uint      `json:"id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ClientName    string    `json:"client_name"`
	ServiceName   string    `json:"service_name"`
}
