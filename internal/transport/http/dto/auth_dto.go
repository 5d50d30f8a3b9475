package dto

type AuthTokenResponse struct {
	Status      string `json:"status"`
	AccessToken string `json:"accessToken"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
