// Package pages implements what each screen of the rental site does: it
// calls the API, updates the session, and returns a view model. Nothing in
// here writes to the terminal.
package pages

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rentacar-dev/rentacar/internal/cli/authstate"
	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/format"
)

// ErrLoginRequired is returned by pages that need an authenticated user
var ErrLoginRequired = errors.New("you are not logged in. Please run 'rentacar login' first")

// API is the set of backend calls the pages use
type API interface {
	Login(ctx context.Context, email, password string) (*client.AuthResponse, error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error)
	Locations(ctx context.Context) ([]client.Location, error)
	Cars(ctx context.Context, filter client.CarFilter) ([]client.Car, error)
	Car(ctx context.Context, id int64) (*client.Car, error)
	CheckAvailability(ctx context.Context, req client.AvailabilityRequest) (bool, error)
	CreateBooking(ctx context.Context, req client.CreateBookingRequest) (*client.CreateBookingResponse, error)
	Bookings(ctx context.Context) ([]client.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
	AddCar(ctx context.Context, car client.CarInput) (*client.AddCarResponse, error)
	UpdateCar(ctx context.Context, id int64, fields map[string]any) error
	AllBookings(ctx context.Context) ([]client.Booking, error)
}

// Pages holds the dependencies shared by every page
type Pages struct {
	api      API
	session  *authstate.Session
	log      zerolog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New creates the page set
func New(api API, session *authstate.Session, log zerolog.Logger) *Pages {
	return &Pages{
		api:      api,
		session:  session,
		log:      log,
		validate: newValidator(),
		now:      time.Now,
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()

	// Register custom validators
	validate.RegisterValidation("rental_email", func(fl validator.FieldLevel) bool {
		return format.ValidateEmail(fl.Field().String())
	})
	validate.RegisterValidation("rental_phone", func(fl validator.FieldLevel) bool {
		return format.ValidatePhone(fl.Field().String())
	})

	return validate
}
