package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/linkup-app/backend/internal/transport/http/respond"
)

func decodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}

// pageParams reads ?page and ?limit with the 1/10 defaults shared by every
// list endpoint.
func pageParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

func writeBadRequest(w http.ResponseWriter, message string) {
	respond.Fail(w, http.StatusBadRequest, message)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	respond.Fail(w, http.StatusUnauthorized, message)
}

func writeNotFound(w http.ResponseWriter, message string) {
	respond.Fail(w, http.StatusNotFound, message)
}

func writeInternal(w http.ResponseWriter) {
	respond.Fail(w, http.StatusInternalServerError, "Internal server error")
}
