package mux

import (
	"net/http"

	"pokerverse-server/pkg/account"
)

func (m *Mux) getLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		entries, err := account.Leaderboard(r.Context(), rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
