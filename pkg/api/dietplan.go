package api

import "time"

type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type Meal struct {
	Time   string   `json:"time"`
	Items  []string `json:"items"`
	Herbs  []string `json:"herbs"`
	Recipe Recipe   `json:"recipe"`
}

type DailyPlan struct {
	Day      string   `json:"day"`
	Meals    []Meal   `json:"meals"`
	Remedies []string `json:"remedies"`
}

// PlanPreferences enumerates every preference the plan prompt recognizes.
// Unknown keys cannot be smuggled in; empty fields are omitted from the prompt.
type PlanPreferences struct {
	Cuisine        string   `json:"cuisine,omitempty"`
	Allergies      []string `json:"allergies,omitempty"`
	HealthGoals    []string `json:"health_goals,omitempty"`
	AvoidFoods     []string `json:"avoid_foods,omitempty"`
	FoodPreference string   `json:"food_preference,omitempty"` // overrides the profile's value
}

type GenerateDietPlanRequest struct {
	Preferences PlanPreferences `json:"preferences"`
}

type DietPlan struct {
	ID            string      `json:"id"`
	WeekStartDate time.Time   `json:"weekStartDate"`
	DailyPlans    []DailyPlan `json:"dailyPlans"`
}

type UserProfile struct {
	Weight         float64 `json:"weight"`
	Height         float64 `json:"height"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	FoodPreference string  `json:"foodPreference"`
}
