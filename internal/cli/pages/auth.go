package pages

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
)

// LoginForm is what the login screen collects
type LoginForm struct {
	Email    string
	Password string
}

// RegisterForm is what the sign-up screen collects
type RegisterForm struct {
	FullName        string `validate:"required"`
	Email           string `validate:"rental_email"`
	Phone           string `validate:"rental_phone"`
	Password        string `validate:"min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

// Messages shown for register form problems, keyed by field
var registerMessages = map[string]string{
	"FullName":        "Please enter your full name",
	"Email":           "Please enter a valid email address",
	"Phone":           "Please enter a valid phone number",
	"Password":        "Password must be at least 6 characters long",
	"ConfirmPassword": "Passwords do not match",
}

// Login authenticates and caches the returned profile
func (p *Pages) Login(ctx context.Context, form LoginForm) *view.Alert {
	resp, err := p.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		return view.Error(err.Error())
	}

	if err := p.session.Store().SetCurrentUser(resp.User); err != nil {
		p.log.Error().Err(err).Msg("Failed to save current user")
		return view.Error(err.Error())
	}

	return view.Success("Login successful!")
}

// ValidateRegistration returns the first problem with the form, or nil
func (p *Pages) ValidateRegistration(form RegisterForm) *view.Alert {
	err := p.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := registerMessages[verrs[0].Field()]; ok {
			return view.Error(msg)
		}
	}
	return view.Error(err.Error())
}

// Register validates the form, creates the account and caches its profile
func (p *Pages) Register(ctx context.Context, form RegisterForm) *view.Alert {
	if alert := p.ValidateRegistration(form); alert != nil {
		return alert
	}

	resp, err := p.api.Register(ctx, client.RegisterRequest{
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	})
	if err != nil {
		return view.Error(err.Error())
	}

	if err := p.session.Store().SetCurrentUser(resp.User); err != nil {
		p.log.Error().Err(err).Msg("Failed to save current user")
		return view.Error(err.Error())
	}

	return view.Success("Registration successful!")
}

// Logout ends the session. A failed logout was already logged by the
// resolver and produces no alert.
func (p *Pages) Logout(ctx context.Context) *view.Alert {
	if !p.session.Teardown(ctx) {
		return nil
	}
	return view.Success("Logged out")
}
