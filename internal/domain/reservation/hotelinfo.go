package reservation

// HotelInfo is the hotel-wide configuration owned by the collaborator. The
// tax rate and currency symbol feed the pricing calculator as explicit
// values; nothing reads them ambiently.
type HotelInfo struct {
	HotelName      string  `json:"hotel_name"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
	HotelAddress   string  `json:"hotel_address"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	CheckInTime    string  `json:"check_in"`
	CheckOutTime   string  `json:"check_out"`
	TaxRate        float64 `json:"tax_rate"`
}

// Report is the collaborator's analytics payload for the admin dashboard.
// The portal proxies it; rendering is out of scope.
type Report struct {
	TotalBookings    int64   `json:"total_bookings"`
	TotalRevenue     float64 `json:"total_revenue"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	AverageDailyRate float64 `json:"average_daily_rate"`

	MonthlyRevenue []MonthlyRevenue `json:"monthly_revenue"`
	RoomTypeStats  []RoomTypeStat   `json:"room_type_bookings"`
	StatusCounts   []StatusCount    `json:"booking_status_distribution"`
}

// MonthlyRevenue is one month's revenue figure.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// RoomTypeStat aggregates bookings and revenue per room type.
type RoomTypeStat struct {
	Type    string  `json:"type"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// StatusCount is the booking count for one lifecycle status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
