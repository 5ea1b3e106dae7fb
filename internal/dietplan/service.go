// Package dietplan generates and serves weekly Ayurvedic diet plans. A plan
// belongs to the calendar week it was generated in; weeks start on Sunday.
package dietplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ayurhealth-backend/internal/advisor"
	"ayurhealth-backend/internal/database"
	"ayurhealth-backend/pkg/api"
)

// ErrProfileIncomplete is returned when plan generation is attempted before
// the user has filled in weight, height, age, gender, and food preference.
var ErrProfileIncomplete = errors.New("please complete your profile with weight, height, age, gender, and food preference before generating a diet plan")

type Service struct {
	db      *gorm.DB
	advisor *advisor.Advisor
}

func NewService(db *gorm.DB, adv *advisor.Advisor) *Service {
	return &Service{db: db, advisor: adv}
}

// CurrentWeekStart returns midnight at the start of the most recent Sunday,
// in now's location. A Sunday maps to itself.
func CurrentWeekStart(now time.Time) time.Time {
	start := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
}

// CurrentPlan returns the newest plan for the current week. Having no plan
// yet is a normal outcome, not an error.
func (s *Service) CurrentPlan(ctx context.Context, userId string) (api.DietPlan, bool, error) {
	row, found, err := database.GetLatestPlanSince(ctx, s.db, userId, CurrentWeekStart(time.Now()))
	if err != nil {
		return api.DietPlan{}, false, fmt.Errorf("error fetching diet plan: %w", err)
	}
	if !found {
		return api.DietPlan{}, false, nil
	}

	plan, err := toApiPlan(row)
	if err != nil {
		return api.DietPlan{}, false, err
	}
	return plan, true, nil
}

// Generate produces a fresh 7-day plan from the user's profile and the given
// preferences, persists it for the current week, and returns it. An earlier
// plan for the same week is shadowed by the new one, not overwritten.
func (s *Service) Generate(ctx context.Context, userId string, prefs api.PlanPreferences) (api.DietPlan, error) {
	user, err := database.GetUser(ctx, s.db, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return api.DietPlan{}, ErrProfileIncomplete
		}
		return api.DietPlan{}, fmt.Errorf("error loading user profile: %w", err)
	}

	profile, ok := planProfile(user)
	if !ok {
		return api.DietPlan{}, ErrProfileIncomplete
	}

	days, err := s.advisor.GenerateWeeklyPlan(ctx, profile, prefs)
	if err != nil {
		return api.DietPlan{}, err
	}

	raw, err := json.Marshal(days)
	if err != nil {
		return api.DietPlan{}, fmt.Errorf("error encoding diet plan: %w", err)
	}

	row := database.DietPlan{
		Id:            uuid.New(),
		UserId:        userId,
		WeekStartDate: CurrentWeekStart(time.Now()),
		DailyPlans:    raw,
		CreationTime:  time.Now(),
	}
	if err := database.CreateDietPlan(ctx, s.db, &row); err != nil {
		return api.DietPlan{}, fmt.Errorf("error saving diet plan: %w", err)
	}

	return api.DietPlan{
		ID:            row.Id.String(),
		WeekStartDate: row.WeekStartDate,
		DailyPlans:    days,
	}, nil
}

// planProfile checks that every field plan generation depends on is present.
func planProfile(user database.User) (advisor.PlanProfile, bool) {
	if !user.Weight.Valid || !user.Height.Valid || !user.Age.Valid ||
		!user.Gender.Valid || user.Gender.String == "" ||
		!user.FoodPreference.Valid || user.FoodPreference.String == "" {
		return advisor.PlanProfile{}, false
	}
	return advisor.PlanProfile{
		Weight:         user.Weight.Float64,
		Height:         user.Height.Float64,
		Age:            int(user.Age.Int64),
		Gender:         user.Gender.String,
		FoodPreference: user.FoodPreference.String,
	}, true
}

func toApiPlan(row database.DietPlan) (api.DietPlan, error) {
	var days []api.DailyPlan
	if err := json.Unmarshal(row.DailyPlans, &days); err != nil {
		return api.DietPlan{}, fmt.Errorf("error decoding stored diet plan %s: %w", row.Id, err)
	}
	return api.DietPlan{
		ID:            row.Id.String(),
		WeekStartDate: row.WeekStartDate,
		DailyPlans:    days,
	}, nil
}
