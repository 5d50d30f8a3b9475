// Package respond writes the JSON response envelope shared by every API
// route: status "Success" or "Fail", plus a message on failure or
// domain-specific fields on success.
package respond

import (
	"encoding/json"
	"net/http"
)

const (
	StatusSuccess = "Success"
	StatusFail    = "Fail"
)

type FailBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, FailBody{Status: StatusFail, Message: message})
}

func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, struct {
		Status string `json:"status"`
		Data   any    `json:"data"`
	}{Status: StatusSuccess, Data: data})
}
