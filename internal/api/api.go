package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"ayurhealth-backend/internal/advisor"
	"ayurhealth-backend/internal/chat"
	"ayurhealth-backend/internal/dietplan"
	"ayurhealth-backend/internal/wellness"
)

// maxCachedStores bounds how many users' chat stores are held in memory at
// once. Evicted stores are reloaded from the database on next access.
const maxCachedStores = 256

type BackendService struct {
	db       *gorm.DB
	stores   *chat.StoreCache
	advisor  *advisor.Advisor
	plans    *dietplan.Service
	wellness *wellness.Service
}

func NewBackendService(db *gorm.DB, adv *advisor.Advisor) *BackendService {
	return &BackendService{
		db:       db,
		stores:   chat.NewStoreCache(db, maxCachedStores),
		advisor:  adv,
		plans:    dietplan.NewService(db, adv),
		wellness: wellness.NewService(db),
	}
}

func (s *BackendService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))

	r.Group(func(r chi.Router) {
		r.Use(UserIdentity(s.db))

		r.Route("/chats", func(r chi.Router) {
			r.Get("/", RestHandler(s.ListChats))
			r.Post("/", RestHandler(s.CreateChat))
			r.Put("/active", RestHandler(s.SetActiveChat))
			r.Get("/{chat_id}", RestHandler(s.GetChat))
			r.Post("/{chat_id}/messages", RestHandler(s.SendMessage))
		})

		r.Post("/advice", RestHandler(s.GetAdvice))

		r.Route("/diet-plan", func(r chi.Router) {
			r.Get("/", RestHandler(s.GetDietPlan))
			r.Post("/", RestHandler(s.GenerateDietPlan))
		})

		r.Route("/wellness", func(r chi.Router) {
			r.Get("/", RestHandler(s.ListCheckIns))
			r.Post("/", RestHandler(s.AddCheckIn))
			r.Get("/prompt", RestHandler(s.CheckInPrompt))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", RestHandler(s.GetProfile))
			r.Put("/", RestHandler(s.UpdateProfile))
		})
	})
}

// advisorError maps the advisor's sentinel errors to response codes. Model
// and transport failures are the upstream's fault, hence 502.
func advisorError(err error) error {
	switch {
	case errors.Is(err, advisor.ErrGenerationFailed):
		return CodedError(http.StatusBadGateway, err)
	case errors.Is(err, advisor.ErrMalformedOutput):
		return CodedError(http.StatusBadGateway, err)
	default:
		return err
	}
}
