package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	gmux "github.com/gorilla/mux"
	"pokerverse-server/internal/config"
	"pokerverse-server/internal/jwt"
	"pokerverse-server/pkg/account"
	"pokerverse-server/pkg/holdem"
	"pokerverse-server/pkg/room"
)

type ctxKey int

const ctxUserKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version   string
	recaptcha recaptcha
	manager   *room.Manager

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	cfg := config.Instance()
	manager := room.NewManager(holdem.Options{
		SmallBlind: cfg.Blinds.Small,
		BigBlind:   cfg.Blinds.Big,
	})
	manager.StartShift()

	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		manager:   manager,
		recaptcha: newRecaptcha(),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/user").Handler(this.postUser())
		r.Methods(http.MethodPost).Path("/user/auth").Handler(this.postUserAuth())
		r.Methods(http.MethodGet).Path("/leaderboard").Handler(this.getLeaderboard())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodGet).Path("/user").Handler(this.getUser())
		r.Methods(http.MethodPost).Path("/user/deposit").Handler(this.postUserDeposit())
		r.Methods(http.MethodGet).Path("/user/transactions").Handler(this.getUserTransactions())

		r.Methods(http.MethodGet).Path("/room/{id:[A-Za-z0-9_-]+}/ws").Handler(this.getRoomIDWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		user, err := account.GetUserByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxUserKey, user)
		w.Header().Set("PokerVerse-UserID", strconv.FormatInt(user.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
