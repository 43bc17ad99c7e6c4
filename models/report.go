package models

type MonthlyReport struct {
	Month               int     `json:"month"`
	Year                int     `json:"year"`
	TotalEvents         int     `json:"total_events"`
	TotalIncome         float64 `json:"total_income"`
	TotalExpenses       float64 `json:"total_expenses"`
	TotalProfit         float64 `json:"total_profit"`
	AvgParticipants     float64 `json:"avg_participants"`
	MostPopularService  string  `json:"most_popular_service"`
	ClientRetentionRate float64 `json:"client_retention_rate"`
}

type AnnualTotals struct {
	TotalEvents     int     `json:"total_events"`
	TotalIncome     float64 `json:"total_income"`
	TotalExpenses   float64 `json:"total_expenses"`
	TotalProfit     float64 `json:"total_profit"`
	AvgParticipants float64 `json:"avg_participants"`
}

type AnnualSummary struct {
	Year           int             `json:"year"`
	MonthlyReports []MonthlyReport `json:"monthly_reports"`
	AnnualTotals   AnnualTotals    `json:"annual_totals"`
}

type Dashboard struct {
	Today struct {
		NewBookings int    `json:"new_bookings"`
		Date        string `json:"date"`
	} `json:"today"`
	CurrentMonth struct {
		MonthName string  `json:"month_name"`
		Events    int     `json:"events"`
		Income    float64 `json:"income"`
		Profit    float64 `json:"profit"`
	} `json:"current_month"`
	UpcomingEvents   int     `json:"upcoming_events"`
	ConfirmedRevenue float64 `json:"confirmed_revenue"`
	Alerts           struct {
		LowStockItems  int `json:"low_stock_items"`
		PendingReviews int `json:"pending_reviews"`
	} `json:"alerts"`
}

type TopClient struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	TotalBookings int     `json:"total_bookings"`
	TotalSpent    float64 `json:"total_spent"`
}
