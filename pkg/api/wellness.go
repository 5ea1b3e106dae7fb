package api

type CheckIn struct {
	Date      string            `json:"date"` // YYYY-MM-DD
	Responses map[string]string `json:"responses"`
}

type ListCheckInsResponse struct {
	CheckIns []CheckIn `json:"checkIns"`
}

type CheckInPromptResponse struct {
	ShouldPrompt bool `json:"shouldPrompt"`
}
