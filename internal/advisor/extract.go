package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"ayurhealth-backend/pkg/api"
)

// parseDailyPlans applies the two-stage parsing contract for structured model
// output: strip any markdown code fences, try a direct parse, then fall back
// to the first bracket-matched JSON substring. Anything that does not yield
// exactly 7 well-formed days is an error; partial output is never accepted.
func parseDailyPlans(raw string) ([]api.DailyPlan, error) {
	cleaned := strings.TrimSpace(stripCodeFences(raw))

	var days []api.DailyPlan
	if err := json.Unmarshal([]byte(cleaned), &days); err != nil {
		candidate, ok := extractJSON(cleaned)
		if !ok {
			return nil, fmt.Errorf("no JSON found in model output")
		}
		days = nil
		if err := json.Unmarshal([]byte(candidate), &days); err != nil {
			return nil, fmt.Errorf("invalid JSON in model output: %w", err)
		}
	}

	if len(days) != 7 {
		return nil, fmt.Errorf("expected 7 daily plans, got %d", len(days))
	}
	for i, day := range days {
		if day.Day == "" {
			return nil, fmt.Errorf("daily plan %d is missing its day name", i)
		}
		if len(day.Meals) == 0 {
			return nil, fmt.Errorf("daily plan for %s has no meals", day.Day)
		}
	}

	return days, nil
}

// stripCodeFences removes ```json / ``` markers the model may wrap around its
// output. The fence language tag is dropped together with the backticks.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return s
}

// extractJSON scans for the first '['- or '{'-delimited substring, matching
// brackets across the whole text. Brackets inside JSON strings are ignored.
func extractJSON(s string) (string, bool) {
	start := -1
	var open, match byte
	for i := 0; i < len(s); i++ {
		if s[i] == '[' || s[i] == '{' {
			start = i
			open = s[i]
			if open == '[' {
				match = ']'
			} else {
				match = '}'
			}
			break
		}
	}
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case match:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
