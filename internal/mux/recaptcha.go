package mux

import (
	"time"

	grecaptcha "github.com/ezzarghili/recaptcha-go"
	"github.com/sirupsen/logrus"
	"pokerverse-server/internal/config"
)

type recaptcha interface {
	// Verify will verify the token is valid
	Verify(token string) error
}

// noopRecaptcha is used when no secret is configured, such as local development
type noopRecaptcha struct{}

func (n noopRecaptcha) Verify(token string) error {
	return nil
}

func newRecaptcha() recaptcha {
	secret := config.Instance().RecaptchaSecret
	if secret == "" {
		logrus.Warn("recaptcha secret not set, verification is disabled")
		return noopRecaptcha{}
	}

	captcha, err := grecaptcha.NewReCAPTCHA(secret, grecaptcha.V3, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not load recaptcha")
	}

	return &captcha
}
