package api

import (
	"log/slog"
	"net/http"

	"ayurhealth-backend/internal/database"
	"ayurhealth-backend/pkg/api"
)

// GetProfile returns the user's wellness profile. Unset fields are zero
// values; the middleware guarantees the user row exists.
func (s *BackendService) GetProfile(r *http.Request) (any, error) {
	user, err := database.GetUser(r.Context(), s.db, UserId(r))
	if err != nil {
		slog.Error("error loading user profile", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error loading profile")
	}

	return api.UserProfile{
		Weight:         user.Weight.Float64,
		Height:         user.Height.Float64,
		Age:            int(user.Age.Int64),
		Gender:         user.Gender.String,
		FoodPreference: user.FoodPreference.String,
	}, nil
}

func (s *BackendService) UpdateProfile(r *http.Request) (any, error) {
	req, err := ParseRequest[api.UserProfile](r)
	if err != nil {
		return nil, err
	}

	if req.Weight <= 0 || req.Height <= 0 || req.Age <= 0 || req.Gender == "" || req.FoodPreference == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "weight, height, age, gender, and food preference are all required")
	}

	if err := database.UpdateUserProfile(r.Context(), s.db, UserId(r), req.Weight, req.Height, req.Age, req.Gender, req.FoodPreference); err != nil {
		slog.Error("error updating user profile", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error updating profile")
	}
	return req, nil
}
