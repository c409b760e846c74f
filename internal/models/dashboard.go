package models

// Dashboard holds the summary an owner sees: listing and booking counts,
// the three most recent bookings, and revenue from confirmed bookings
// created in the current calendar month.
type Dashboard struct {
	TotalCars         int       `json:"total_cars"`
	TotalBookings     int       `json:"total_bookings"`
	PendingBookings   int       `json:"pending_bookings"`
	CompletedBookings int       `json:"completed_bookings"`
	RecentBookings    []Booking `json:"recent_bookings"`
	MonthlyRevenue    float64   `json:"monthly_revenue"`
}
