package api

import (
	"log/slog"
	"net/http"

	"ayurhealth-backend/pkg/api"
)

func (s *BackendService) ListCheckIns(r *http.Request) (any, error) {
	checkIns, err := s.wellness.ListCheckIns(r.Context(), UserId(r))
	if err != nil {
		slog.Error("error listing check-ins", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error listing check-ins")
	}
	return api.ListCheckInsResponse{CheckIns: checkIns}, nil
}

// AddCheckIn records today's check-in. The date is always the server's local
// date; a client-supplied date is ignored.
func (s *BackendService) AddCheckIn(r *http.Request) (any, error) {
	req, err := ParseRequest[api.CheckIn](r)
	if err != nil {
		return nil, err
	}

	if len(req.Responses) == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "responses are required")
	}

	checkIn, err := s.wellness.AddCheckIn(r.Context(), UserId(r), req.Responses)
	if err != nil {
		slog.Error("error saving check-in", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error saving check-in")
	}
	return checkIn, nil
}

func (s *BackendService) CheckInPrompt(r *http.Request) (any, error) {
	shouldPrompt, err := s.wellness.ShouldPrompt(r.Context(), UserId(r))
	if err != nil {
		slog.Error("error checking check-in status", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error checking check-in status")
	}
	return api.CheckInPromptResponse{ShouldPrompt: shouldPrompt}, nil
}
