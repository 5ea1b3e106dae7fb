package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ayurhealth-backend/internal/advisor"
	"ayurhealth-backend/internal/database"
	pkgapi "ayurhealth-backend/pkg/api"
)

type fakeGenerator struct {
	response string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f.response, nil
}

func newTestRouter(t *testing.T, gen *fakeGenerator) chi.Router {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.GetMigrator(db).Migrate())

	service := NewBackendService(db, advisor.New(gen))
	router := chi.NewRouter()
	service.AddRoutes(router)
	return router
}

func doRequest(t *testing.T, router chi.Router, method, path, userId string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userId != "" {
		req.Header.Set("X-User-Id", userId)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	rec := doRequest(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingUserIdIsUnauthorized(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	rec := doRequest(t, router, http.MethodGet, "/chats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatFlow(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{response: "Try a cup of warm golden milk."})

	// Opening message triggers exactly one automatic assistant reply.
	rec := doRequest(t, router, http.MethodPost, "/chats", "user-1", pkgapi.CreateChatRequest{
		Title:   "Sleep trouble",
		Message: "I can't sleep at night",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[pkgapi.CreateChatResponse](t, rec)
	require.NotEmpty(t, created.ChatID)

	rec = doRequest(t, router, http.MethodGet, "/chats", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[pkgapi.ListChatsResponse](t, rec)
	require.Len(t, list.Chats, 1)
	assert.Equal(t, created.ChatID, list.ActiveChatID)

	chat := list.Chats[0]
	assert.Equal(t, "Sleep trouble", chat.Title)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, pkgapi.RoleUser, chat.Messages[0].Role)
	assert.Equal(t, "I can't sleep at night", chat.Messages[0].Content)
	assert.Equal(t, pkgapi.RoleAssistant, chat.Messages[1].Role)
	assert.Equal(t, "Try a cup of warm golden milk.", chat.Messages[1].Content)

	// A follow-up user message on an active chat gets no automatic reply.
	rec = doRequest(t, router, http.MethodPost, "/chats/"+created.ChatID+"/messages", "user-1", pkgapi.SendMessageRequest{
		Content: "It got worse",
		Role:    pkgapi.RoleUser,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	sent := decode[pkgapi.SendMessageResponse](t, rec)
	assert.Len(t, sent.Chat.Messages, 3)

	rec = doRequest(t, router, http.MethodGet, "/chats/"+created.ChatID, "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[pkgapi.Chat](t, rec)
	assert.Len(t, fetched.Messages, 3)
}

func TestSendMessageUnknownChat(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	rec := doRequest(t, router, http.MethodPost, "/chats/2da79cb4-40b5-4fe9-8fc9-aaa6fdcf5b96/messages", "user-1", pkgapi.SendMessageRequest{
		Content: "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatsAreUserScoped(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	rec := doRequest(t, router, http.MethodPost, "/chats", "user-1", pkgapi.CreateChatRequest{Title: "Mine"})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[pkgapi.CreateChatResponse](t, rec)

	rec = doRequest(t, router, http.MethodGet, "/chats/"+created.ChatID, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/chats", "user-2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[pkgapi.ListChatsResponse](t, rec)
	assert.Empty(t, list.Chats)
}

func TestSetActiveChat(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	rec := doRequest(t, router, http.MethodPost, "/chats", "user-1", pkgapi.CreateChatRequest{Title: "A"})
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[pkgapi.CreateChatResponse](t, rec)

	rec = doRequest(t, router, http.MethodPost, "/chats", "user-1", pkgapi.CreateChatRequest{Title: "B"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/chats/active", "user-1", pkgapi.SetActiveChatRequest{ChatID: first.ChatID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/chats", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[pkgapi.ListChatsResponse](t, rec)
	assert.Equal(t, first.ChatID, list.ActiveChatID)
}

func TestAdvice(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{response: "## Digestion\n\nFavor warm, cooked foods."})

	rec := doRequest(t, router, http.MethodPost, "/advice", "user-1", pkgapi.AdviceRequest{Message: "my digestion is off"})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[pkgapi.AdviceResponse](t, rec)
	assert.Contains(t, res.Advice, "Digestion")

	rec = doRequest(t, router, http.MethodPost, "/advice", "user-1", pkgapi.AdviceRequest{Message: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func dietPlanJSON(t *testing.T) string {
	days := make([]pkgapi.DailyPlan, 0, 7)
	for _, name := range []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"} {
		days = append(days, pkgapi.DailyPlan{
			Day: name,
			Meals: []pkgapi.Meal{{
				Time:  "Dinner (6-7 PM)",
				Items: []string{"vegetable soup", "rice"},
				Herbs: []string{"turmeric"},
				Recipe: pkgapi.Recipe{
					Name:         "Golden Soup",
					Ingredients:  []string{"carrots", "turmeric"},
					Instructions: []string{"chop", "simmer"},
				},
			}},
			Remedies: []string{"triphala before bed"},
		})
	}
	raw, err := json.Marshal(days)
	require.NoError(t, err)
	return string(raw)
}

type dietPlanEnvelope struct {
	Plan *pkgapi.DietPlan `json:"plan"`
}

func TestDietPlanFlow(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{response: dietPlanJSON(t)})

	// No plan yet.
	rec := doRequest(t, router, http.MethodGet, "/diet-plan", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[dietPlanEnvelope](t, rec).Plan)

	// Generation refuses until the profile is complete.
	rec = doRequest(t, router, http.MethodPost, "/diet-plan", "user-1", pkgapi.GenerateDietPlanRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/profile", "user-1", pkgapi.UserProfile{
		Weight: 70, Height: 175, Age: 30, Gender: "female", FoodPreference: "vegetarian",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/diet-plan", "user-1", pkgapi.GenerateDietPlanRequest{
		Preferences: pkgapi.PlanPreferences{Cuisine: "south indian"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decode[pkgapi.DietPlan](t, rec)
	require.Len(t, plan.DailyPlans, 7)
	assert.Equal(t, "Sunday", plan.DailyPlans[0].Day)

	rec = doRequest(t, router, http.MethodGet, "/diet-plan", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[dietPlanEnvelope](t, rec).Plan
	require.NotNil(t, fetched)
	assert.Equal(t, plan.ID, fetched.ID)
}

func TestDietPlanBadModelOutput(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{response: "sorry, no plan"})

	rec := doRequest(t, router, http.MethodPut, "/profile", "user-1", pkgapi.UserProfile{
		Weight: 70, Height: 175, Age: 30, Gender: "male", FoodPreference: "non-vegetarian",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/diet-plan", "user-1", pkgapi.GenerateDietPlanRequest{})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestWellnessFlow(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	rec := doRequest(t, router, http.MethodGet, "/wellness/prompt", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[pkgapi.CheckInPromptResponse](t, rec).ShouldPrompt)

	rec = doRequest(t, router, http.MethodPost, "/wellness", "user-1", pkgapi.CheckIn{
		Responses: map[string]string{"energy": "high", "sleep": "restful"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	added := decode[pkgapi.CheckIn](t, rec)
	assert.Equal(t, time.Now().Format("2006-01-02"), added.Date)

	rec = doRequest(t, router, http.MethodGet, "/wellness/prompt", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[pkgapi.CheckInPromptResponse](t, rec).ShouldPrompt)

	rec = doRequest(t, router, http.MethodGet, "/wellness", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[pkgapi.ListCheckInsResponse](t, rec)
	require.Len(t, list.CheckIns, 1)
	assert.Equal(t, "high", list.CheckIns[0].Responses["energy"])
}

func TestProfileRoundTrip(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	rec := doRequest(t, router, http.MethodGet, "/profile", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	empty := decode[pkgapi.UserProfile](t, rec)
	assert.Zero(t, empty.Weight)

	rec = doRequest(t, router, http.MethodPut, "/profile", "user-1", pkgapi.UserProfile{
		Weight: 65, Height: 160, Age: 42, Gender: "female", FoodPreference: "vegan",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/profile", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[pkgapi.UserProfile](t, rec)
	assert.Equal(t, 65.0, profile.Weight)
	assert.Equal(t, "vegan", profile.FoodPreference)

	rec = doRequest(t, router, http.MethodPut, "/profile", "user-1", pkgapi.UserProfile{Weight: 65})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
