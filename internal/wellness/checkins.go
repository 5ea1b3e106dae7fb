// Package wellness records daily check-in responses and decides when the
// client should prompt for a new one.
package wellness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ayurhealth-backend/internal/database"
	"ayurhealth-backend/pkg/api"
)

const dateLayout = "2006-01-02"

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// AddCheckIn records a set of question responses under today's local date.
func (s *Service) AddCheckIn(ctx context.Context, userId string, responses map[string]string) (api.CheckIn, error) {
	raw, err := json.Marshal(responses)
	if err != nil {
		return api.CheckIn{}, fmt.Errorf("error encoding check-in responses: %w", err)
	}

	checkIn := database.WellnessCheckIn{
		UserId:       userId,
		Date:         time.Now().Format(dateLayout),
		Responses:    raw,
		CreationTime: time.Now(),
	}
	if err := database.CreateCheckIn(ctx, s.db, &checkIn); err != nil {
		return api.CheckIn{}, fmt.Errorf("error saving check-in: %w", err)
	}

	return api.CheckIn{Date: checkIn.Date, Responses: responses}, nil
}

// ListCheckIns returns all of the user's check-ins, newest first.
func (s *Service) ListCheckIns(ctx context.Context, userId string) ([]api.CheckIn, error) {
	rows, err := database.GetCheckIns(ctx, s.db, userId)
	if err != nil {
		return nil, fmt.Errorf("error listing check-ins: %w", err)
	}

	checkIns := make([]api.CheckIn, 0, len(rows))
	for _, row := range rows {
		var responses map[string]string
		if err := json.Unmarshal(row.Responses, &responses); err != nil {
			return nil, fmt.Errorf("error decoding check-in %d: %w", row.ID, err)
		}
		checkIns = append(checkIns, api.CheckIn{Date: row.Date, Responses: responses})
	}
	return checkIns, nil
}

// ShouldPrompt reports whether the user has not yet checked in today. The
// newest check-in decides; older same-day duplicates are irrelevant.
func (s *Service) ShouldPrompt(ctx context.Context, userId string) (bool, error) {
	rows, err := database.GetCheckIns(ctx, s.db, userId)
	if err != nil {
		return false, fmt.Errorf("error checking latest check-in: %w", err)
	}
	if len(rows) == 0 {
		return true, nil
	}
	return rows[0].Date != time.Now().Format(dateLayout), nil
}
