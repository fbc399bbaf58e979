package mux

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/badoux/checkmail"
	"pokerverse-server/internal/jwt"
	"pokerverse-server/pkg/account"
)

type userPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

// userWithEmail should only be returned to the requesting user
type userWithEmail struct {
	*account.User
	Email string `json:"email"`
}

var validUsernameRx = regexp.MustCompile(`^[a-zA-Z0-9_]{3,24}\z`)

func (m *Mux) postUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var up userPayload
		if !decodeRequest(w, r, &up) {
			return
		}

		if err := m.recaptcha.Verify(up.Token); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if !validUsernameRx.MatchString(up.Username) {
			writeJSONError(w, http.StatusBadRequest, errors.New("username must only contain letters, numbers, and underscores, and be between 3 and 24 characters"))
			return
		}

		if err := checkmail.ValidateFormat(up.Email); err != nil {
			writeJSONError(w, http.StatusBadRequest, errors.New("missing or invalid email address"))
			return
		}

		if len(up.Password) < 6 {
			writeJSONError(w, http.StatusBadRequest, errors.New("password must be 6 or more characters"))
			return
		}

		user, err := account.CreateUser(r.Context(), up.Username, up.Email, up.Password)
		if err != nil {
			if err == account.ErrDuplicateKey {
				writeJSONError(w, http.StatusBadRequest, errors.New("username or email address is already taken"))
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, &userWithEmail{
			User:  user,
			Email: user.Email,
		})
	}
}

type postUserAuthResponse struct {
	JWT  string        `json:"jwt"`
	User userWithEmail `json:"user"`
}

func (m *Mux) postUserAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var up userPayload
		if !decodeRequest(w, r, &up) {
			return
		}

		user, err := account.GetUserByUsernameAndPassword(r.Context(), up.Username, up.Password)
		if err != nil {
			if err == account.ErrInvalidUsernameOrPassword {
				writeJSONError(w, http.StatusUnauthorized, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		signedToken, err := jwt.Sign(user.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, postUserAuthResponse{
			JWT: signedToken,
			User: userWithEmail{
				User:  user,
				Email: user.Email,
			},
		})
	}
}

func (m *Mux) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(ctxUserKey).(*account.User)
		writeJSON(w, http.StatusOK, &userWithEmail{
			User:  user,
			Email: user.Email,
		})
	}
}

type depositPayload struct {
	Amount int64 `json:"amount"`
}

func (m *Mux) postUserDeposit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dp depositPayload
		if !decodeRequest(w, r, &dp) {
			return
		}

		user := r.Context().Value(ctxUserKey).(*account.User)
		tx, err := user.Deposit(r.Context(), dp.Amount)
		if err != nil {
			var userError account.UserError
			if errors.As(err, &userError) {
				writeJSONError(w, http.StatusBadRequest, userError)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, tx)
	}
}

func (m *Mux) getUserTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		user := r.Context().Value(ctxUserKey).(*account.User)
		transactions, err := user.GetTransactions(r.Context(), rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, transactions)
	}
}
