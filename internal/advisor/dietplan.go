package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ayurhealth-backend/pkg/api"
)

// ErrMalformedOutput is returned when the model's structured output cannot be
// parsed into a 7-day plan. The caller decides whether to retry the request;
// no heuristic repair beyond fence stripping and bracket scanning is attempted.
var ErrMalformedOutput = errors.New("could not parse diet plan from model output")

// PlanProfile is the complete user profile required for plan generation.
type PlanProfile struct {
	Weight         float64
	Height         float64
	Age            int
	Gender         string
	FoodPreference string
}

// GenerateWeeklyPlan invokes the model in structured JSON mode and returns
// exactly 7 daily plans. Preferences override the profile on collision
// (currently only the food preference); nothing partially valid is accepted.
func (a *Advisor) GenerateWeeklyPlan(ctx context.Context, profile PlanProfile, prefs api.PlanPreferences) ([]api.DailyPlan, error) {
	foodPreference := profile.FoodPreference
	if prefs.FoodPreference != "" {
		foodPreference = prefs.FoodPreference
	}

	text, err := a.gen.GenerateContent(ctx, buildPlanPrompt(profile, foodPreference, prefs))
	if err != nil {
		slog.Error("error generating diet plan from model", "error", err)
		return nil, ErrGenerationFailed
	}

	days, err := parseDailyPlans(text)
	if err != nil {
		slog.Error("malformed diet plan output from model", "error", err)
		return nil, ErrMalformedOutput
	}

	return days, nil
}

func buildPlanPrompt(profile PlanProfile, foodPreference string, prefs api.PlanPreferences) string {
	var b strings.Builder

	b.WriteString("As an Ayurvedic nutrition expert, create a personalized 7-day diet plan for a person with the following profile:\n\n")
	fmt.Fprintf(&b, "- Weight: %.1f kg\n", profile.Weight)
	fmt.Fprintf(&b, "- Height: %.1f cm\n", profile.Height)
	fmt.Fprintf(&b, "- Age: %d years\n", profile.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", profile.Gender)
	fmt.Fprintf(&b, "- Food preference: %s\n", foodPreference)

	if prefs.Cuisine != "" {
		fmt.Fprintf(&b, "- Preferred cuisine: %s\n", prefs.Cuisine)
	}
	if len(prefs.Allergies) > 0 {
		fmt.Fprintf(&b, "- Allergies: %s\n", strings.Join(prefs.Allergies, ", "))
	}
	if len(prefs.HealthGoals) > 0 {
		fmt.Fprintf(&b, "- Health goals: %s\n", strings.Join(prefs.HealthGoals, ", "))
	}
	if len(prefs.AvoidFoods) > 0 {
		fmt.Fprintf(&b, "- Foods to avoid: %s\n", strings.Join(prefs.AvoidFoods, ", "))
	}

	b.WriteString(`
Return ONLY a JSON array of exactly 7 day objects, one per weekday starting with Sunday, with this exact structure:
[
  {
    "day": "Sunday",
    "meals": [
      {
        "time": "Breakfast (7-8 AM)",
        "items": ["item 1", "item 2"],
        "herbs": ["herb 1"],
        "recipe": {
          "name": "Recipe Name",
          "ingredients": ["ingredient 1", "ingredient 2"],
          "instructions": ["step 1", "step 2"]
        }
      }
    ],
    "remedies": ["remedy 1", "remedy 2"]
  }
]

Requirements:
1. Each day must have 3-4 meals.
2. Each meal must have 2-4 food items.
3. Each meal must have 1-2 recommended Ayurvedic herbs.
4. Each meal must include one recipe with ingredients and instructions.
5. Each day must have 2-3 daily Ayurvedic remedies.
6. Align recommendations with the person's dosha balance, the food preference, and the season.

Do not include any other text, markdown, or formatting in your response.`)

	return b.String()
}
