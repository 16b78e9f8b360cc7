package dto

type SuggestionResponse struct {
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

type SuggestionsResponse struct {
	Success     bool                 `json:"success"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}
