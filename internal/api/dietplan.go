package api

import (
	"errors"
	"log/slog"
	"net/http"

	"ayurhealth-backend/internal/dietplan"
	"ayurhealth-backend/pkg/api"
)

// GetDietPlan returns the current week's plan, or null if none has been
// generated yet.
func (s *BackendService) GetDietPlan(r *http.Request) (any, error) {
	plan, found, err := s.plans.CurrentPlan(r.Context(), UserId(r))
	if err != nil {
		slog.Error("error fetching diet plan", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error fetching diet plan")
	}
	if !found {
		return struct {
			Plan *api.DietPlan `json:"plan"`
		}{nil}, nil
	}
	return struct {
		Plan *api.DietPlan `json:"plan"`
	}{&plan}, nil
}

func (s *BackendService) GenerateDietPlan(r *http.Request) (any, error) {
	req, err := ParseRequest[api.GenerateDietPlanRequest](r)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.Generate(r.Context(), UserId(r), req.Preferences)
	if err != nil {
		if errors.Is(err, dietplan.ErrProfileIncomplete) {
			return nil, CodedError(http.StatusBadRequest, err)
		}
		return nil, advisorError(err)
	}
	return plan, nil
}
