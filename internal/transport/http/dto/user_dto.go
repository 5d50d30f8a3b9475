package dto

import (
	userssvc "github.com/linkup-app/backend/internal/services/users"
)

type AccountResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Cover    string `json:"cover"`
}

type AccountViewResponse struct {
	AccountResponse
	IsMyAccount bool `json:"isMyAccount"`
}

type AccountPageResponse struct {
	Status     string            `json:"status"`
	Data       []AccountResponse `json:"data"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

func MapAccount(a userssvc.Account) AccountResponse {
	return AccountResponse{
		UserID:   a.UserID,
		Username: a.Username,
		Email:    a.Email,
		Fullname: a.Fullname,
		Title:    a.Title,
		Image:    a.Image,
		Cover:    a.Cover,
	}
}

func MapAccountView(v userssvc.AccountView) AccountViewResponse {
	return AccountViewResponse{
		AccountResponse: MapAccount(v.Account),
		IsMyAccount:     v.IsMyAccount,
	}
}
