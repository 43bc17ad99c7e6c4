package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	bookingRepo "pizzeria/database/repository/booking"
	eventRepo "pizzeria/database/repository/event"
	inventoryRepo "pizzeria/database/repository/inventory"
	reviewRepo "pizzeria/database/repository/review"
	"pizzeria/models"
	"pizzeria/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	noService       = "N/A"
	upcomingDays    = 7
	defaultTopLimit = 10
)

var monthNames = [...]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio",
	"Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// MonthName returns the Spanish name of a month in 1..12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

type Service struct {
	events    eventRepo.EventRepository
	bookings  bookingRepo.BookingRepository
	inventory inventoryRepo.InventoryRepository
	reviews   reviewRepo.ReviewRepository
	cache     *cache
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	events eventRepo.EventRepository,
	bookings bookingRepo.BookingRepository,
	inventory inventoryRepo.InventoryRepository,
	reviews reviewRepo.ReviewRepository,
	cacheClient *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		events:    events,
		bookings:  bookings,
		inventory: inventory,
		reviews:   reviews,
		cache:     &cache{client: cacheClient, ttl: cacheTTL, logger: logger},
		logger:    logger,
		now:       time.Now,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func validMonth(month int) error {
	if month < 1 || month > 12 {
		return utils.NewValidationError("month", "must be between 1 and 12")
	}
	return nil
}

// Monthly summarizes the events dated in the month.
func (s *Service) Monthly(ctx context.Context, year, month int) (*models.MonthlyReport, error) {
	if err := validMonth(month); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("monthly:%04d-%02d", year, month)
	var cached models.MonthlyReport
	if s.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	r, err := s.monthly(ctx, year, month)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, r)
	return r, nil
}

func (s *Service) monthly(ctx context.Context, year, month int) (*models.MonthlyReport, error) {
	from, to := utils.MonthRange(year, month)
	events, err := s.events.ByEventDate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	r := &models.MonthlyReport{Month: month, Year: year, MostPopularService: noService}
	if len(events) == 0 {
		return r, nil
	}

	var income, expenses float64
	participants := 0
	services := map[string]int{}
	for _, e := range events {
		income += e.FinalPrice
		expenses += e.EventCost
		participants += e.Participants
		if e.ServiceType != "" {
			services[e.ServiceType]++
		}
	}

	retention, err := s.retention(ctx, from, to)
	if err != nil {
		return nil, err
	}

	r.TotalEvents = len(events)
	r.TotalIncome = round(income, 2)
	r.TotalExpenses = round(expenses, 2)
	r.TotalProfit = round(income-expenses, 2)
	r.AvgParticipants = round(float64(participants)/float64(len(events)), 1)
	r.MostPopularService = mostPopular(services)
	r.ClientRetentionRate = round(retention, 2)
	return r, nil
}

// mostPopular picks the highest count, breaking ties alphabetically.
func mostPopular(counts map[string]int) string {
	best, bestN := noService, 0
	for name, n := range counts {
		if n > bestN || (n == bestN && name < best) {
			best, bestN = name, n
		}
	}
	return best
}

// retention is the percentage of the month's booking clients that booked an event before it.
func (s *Service) retention(ctx context.Context, from, to string) (float64, error) {
	current, err := s.bookings.ByEventDate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if len(current) == 0 {
		return 0, nil
	}
	previous, err := s.bookings.EventDateBefore(ctx, from)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(previous))
	for _, b := range previous {
		seen[clientKey(b)] = true
	}
	clients := make(map[string]bool, len(current))
	for _, b := range current {
		clients[clientKey(b)] = true
	}
	returning := 0
	for c := range clients {
		if seen[c] {
			returning++
		}
	}
	return float64(returning) / float64(len(clients)) * 100, nil
}

func clientKey(b models.Booking) string {
	if b.ClientEmail != "" {
		return b.ClientEmail
	}
	return b.ClientPhone
}

// Annual runs the monthly report for every month of the year.
func (s *Service) Annual(ctx context.Context, year int) (*models.AnnualSummary, error) {
	summary := &models.AnnualSummary{Year: year, MonthlyReports: make([]models.MonthlyReport, 0, 12)}
	var participants float64
	for m := 1; m <= 12; m++ {
		r, err := s.Monthly(ctx, year, m)
		if err != nil {
			return nil, err
		}
		summary.MonthlyReports = append(summary.MonthlyReports, *r)
		t := &summary.AnnualTotals
		t.TotalEvents += r.TotalEvents
		t.TotalIncome += r.TotalIncome
		t.TotalExpenses += r.TotalExpenses
		t.TotalProfit += r.TotalProfit
		participants += r.AvgParticipants
	}
	summary.AnnualTotals.TotalIncome = round(summary.AnnualTotals.TotalIncome, 2)
	summary.AnnualTotals.TotalExpenses = round(summary.AnnualTotals.TotalExpenses, 2)
	summary.AnnualTotals.TotalProfit = round(summary.AnnualTotals.TotalProfit, 2)
	summary.AnnualTotals.AvgParticipants = round(participants/12, 1)
	return summary, nil
}

func (s *Service) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	now := s.now().In(utils.BusinessLocation)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	key := "dashboard:" + today.Format(utils.DateLayout)

	var cached models.Dashboard
	if s.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	d := &models.Dashboard{}
	created, err := s.bookings.CreatedBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	d.Today.NewBookings = len(created)
	d.Today.Date = today.Format(utils.DateLayout)

	month, err := s.Monthly(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	d.CurrentMonth.MonthName = MonthName(int(now.Month()))
	d.CurrentMonth.Events = month.TotalEvents
	d.CurrentMonth.Income = month.TotalIncome
	d.CurrentMonth.Profit = month.TotalProfit

	upcoming, err := s.bookings.ByEventDate(ctx,
		today.Format(utils.DateLayout),
		today.AddDate(0, 0, upcomingDays+1).Format(utils.DateLayout),
		models.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	d.UpcomingEvents = len(upcoming)

	confirmed, err := s.bookings.List(ctx, models.StatusConfirmed, 0)
	if err != nil {
		return nil, err
	}
	var revenue float64
	for _, b := range confirmed {
		revenue += b.EstimatedPrice
	}
	d.ConfirmedRevenue = round(revenue, 2)

	lowStock, err := s.inventory.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.reviews.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	d.Alerts.LowStockItems = int(lowStock)
	d.Alerts.PendingReviews = int(pending)

	s.cache.set(ctx, key, d)
	return d, nil
}

// TopClients ranks clients by booking count. Spending is the final price of events derived
// from their bookings.
func (s *Service) TopClients(ctx context.Context, limit int) ([]models.TopClient, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	bookings, err := s.bookings.All(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	spentByBooking := make(map[string]float64)
	for _, e := range events {
		if e.BookingID != "" {
			spentByBooking[e.BookingID] += e.FinalPrice
		}
	}

	stats := make(map[string]*models.TopClient)
	var order []string
	for _, b := range bookings {
		k := clientKey(b)
		c, ok := stats[k]
		if !ok {
			c = &models.TopClient{Name: b.ClientName, Email: b.ClientEmail}
			stats[k] = c
			order = append(order, k)
		}
		c.TotalBookings++
		c.TotalSpent += spentByBooking[b.ID]
	}

	out := make([]models.TopClient, 0, len(order))
	for _, k := range order {
		out = append(out, *stats[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalBookings != out[j].TotalBookings {
			return out[i].TotalBookings > out[j].TotalBookings
		}
		return out[i].TotalSpent > out[j].TotalSpent
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
