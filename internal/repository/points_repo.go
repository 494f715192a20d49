package repository

import (
	"log"
	"time"

	"doypal/internal/models"

	"gorm.io/gorm"
)

// PointSummary mirrors the point_summaries view: gross earned points per
// window, plus the net figures the redemption check uses.
type PointSummary struct {
	TotalPoints     int `json:"total_points"`
	WeeklyPoints    int `json:"weekly_points"`
	MonthlyPoints   int `json:"monthly_points"`
	RedeemedPoints  int `json:"redeemed_points"`
	AvailablePoints int `json:"available_points"`
}

type PointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

// WeekStart returns the most recent Sunday at 00:00 local time.
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// MonthStart returns the first of the current month at 00:00 local time.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// Summary computes the point balance for a profile (or globally when
// profileID is nil). The aggregate query is the fast path; if it fails we
// fall back to fetching the active events and bucketing them here.
func (r *PointsRepository) Summary(profileID *uint) (*PointSummary, error) {
	now := time.Now()
	s, err := r.summarize(r.db, profileID, now)
	if err != nil {
		log.Printf("[Points] aggregate query failed, using fallback: %v", err)
		s, err = r.summarizeManually(profileID, now)
		if err != nil {
			return nil, err
		}
	}
	spent, err := r.SpentPoints(r.db, profileID)
	if err != nil {
		return nil, err
	}
	s.RedeemedPoints = spent
	s.AvailablePoints = s.TotalPoints - spent
	return s, nil
}

func (r *PointsRepository) summarize(db *gorm.DB, profileID *uint, now time.Time) (*PointSummary, error) {
	var s PointSummary
	err := db.Model(&models.Event{}).Scopes(Active, ForProfile(profileID)).
		Select(
			"COALESCE(SUM(points), 0) AS total_points, "+
				"COALESCE(SUM(CASE WHEN timestamp >= ? THEN points ELSE 0 END), 0) AS weekly_points, "+
				"COALESCE(SUM(CASE WHEN timestamp >= ? THEN points ELSE 0 END), 0) AS monthly_points",
			WeekStart(now), MonthStart(now),
		).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PointsRepository) summarizeManually(profileID *uint, now time.Time) (*PointSummary, error) {
	var events []models.Event
	err := r.db.Scopes(Active, ForProfile(profileID)).Find(&events).Error
	if err != nil {
		return nil, err
	}
	weekStart := WeekStart(now)
	monthStart := MonthStart(now)
	var s PointSummary
	for _, e := range events {
		s.TotalPoints += e.Points
		if !e.Timestamp.Before(weekStart) {
			s.WeeklyPoints += e.Points
		}
		if !e.Timestamp.Before(monthStart) {
			s.MonthlyPoints += e.Points
		}
	}
	return &s, nil
}

// EarnedPoints sums active event points, optionally inside a transaction.
func (r *PointsRepository) EarnedPoints(db *gorm.DB, profileID *uint) (int, error) {
	var total int
	err := db.Model(&models.Event{}).Scopes(Active, ForProfile(profileID)).
		Select("COALESCE(SUM(points), 0)").Scan(&total).Error
	return total, err
}

// SpentPoints sums points_spent across non-withdrawn redemptions.
func (r *PointsRepository) SpentPoints(db *gorm.DB, profileID *uint) (int, error) {
	var total int
	err := db.Model(&models.Redemption{}).Scopes(ForProfile(profileID)).
		Where("status = ?", models.RedemptionActive).
		Select("COALESCE(SUM(points_spent), 0)").Scan(&total).Error
	return total, err
}

// PointsByDay totals active event points per day of week for the admin
// dashboard.
func (r *PointsRepository) PointsByDay() (map[string]int, error) {
	var rows []struct {
		DayOfWeek string
		Points    int
	}
	err := r.db.Model(&models.Event{}).Scopes(Active).
		Select("day_of_week, points").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int)
	for _, row := range rows {
		if row.DayOfWeek == "" {
			continue
		}
		totals[row.DayOfWeek] += row.Points
	}
	return totals, nil
}
