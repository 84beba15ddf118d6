package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rentacar-dev/rentacar/internal/cli/session"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and registration
type AuthResponse struct {
	Message string           `json:"message"`
	User    *session.Profile `json:"user"`
}

// MessageResponse is the generic acknowledgement body
type MessageResponse struct {
	Message string `json:"message"`
}

// Location is a pickup/return location
type Location struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Address string `json:"address,omitempty"`
}

// Car is a rentable car joined with its location
type Car struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	CarType      string  `json:"car_type"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuel_type"`
	PricePerDay  float64 `json:"price_per_day"`
	LocationID   int64   `json:"location_id"`
	ImageURL     string  `json:"image_url"`
	Description  string  `json:"description"`
	Features     string  `json:"features"`
	LocationName string  `json:"location_name"`
	City         string  `json:"city"`
	Address      string  `json:"address,omitempty"`
}

// Booking is a reservation joined with its car and locations
type Booking struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"user_id"`
	CarID              int64   `json:"car_id"`
	PickupDate         string  `json:"pickup_date"`
	ReturnDate         string  `json:"return_date"`
	PickupLocationID   int64   `json:"pickup_location_id"`
	ReturnLocationID   int64   `json:"return_location_id"`
	TotalPrice         float64 `json:"total_price"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	CarName            string  `json:"car_name"`
	Brand              string  `json:"brand"`
	Model              string  `json:"model"`
	ImageURL           string  `json:"image_url"`
	PickupLocationName string  `json:"pickup_location_name"`
	PickupCity         string  `json:"pickup_city,omitempty"`
	ReturnLocationName string  `json:"return_location_name"`
	ReturnCity         string  `json:"return_city,omitempty"`
	UserName           string  `json:"user_name,omitempty"`
	UserEmail          string  `json:"user_email,omitempty"`
}

// Booking statuses
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// CarFilter narrows GET /cars on the server side
type CarFilter struct {
	LocationID int64
	CarType    string
	MinPrice   *float64
	MaxPrice   *float64
}

func (f CarFilter) query() string {
	q := url.Values{}
	if f.LocationID != 0 {
		q.Set("location_id", strconv.FormatInt(f.LocationID, 10))
	}
	if f.CarType != "" {
		q.Set("car_type", f.CarType)
	}
	if f.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// AvailabilityRequest asks whether a car is free for a date range
type AvailabilityRequest struct {
	CarID      int64  `json:"car_id"`
	PickupDate string `json:"pickup_date"`
	ReturnDate string `json:"return_date"`
}

// AvailabilityResponse answers an AvailabilityRequest
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// CreateBookingRequest represents the booking creation request
type CreateBookingRequest struct {
	CarID            int64   `json:"car_id"`
	PickupDate       string  `json:"pickup_date"`
	ReturnDate       string  `json:"return_date"`
	PickupLocationID int64   `json:"pickup_location_id"`
	ReturnLocationID int64   `json:"return_location_id"`
	TotalPrice       float64 `json:"total_price"`
}

// CreateBookingResponse represents the booking creation response
type CreateBookingResponse struct {
	Message   string `json:"message"`
	BookingID int64  `json:"booking_id"`
}

// CarInput is the admin definition of a car, loadable from YAML or JSON
type CarInput struct {
	Name         string  `json:"name" yaml:"name" validate:"required"`
	Brand        string  `json:"brand" yaml:"brand" validate:"required"`
	Model        string  `json:"model" yaml:"model" validate:"required"`
	Year         int     `json:"year" yaml:"year" validate:"gte=1900"`
	CarType      string  `json:"car_type" yaml:"car_type" validate:"required"`
	Seats        int     `json:"seats" yaml:"seats" validate:"gt=0"`
	Transmission string  `json:"transmission" yaml:"transmission" validate:"required"`
	FuelType     string  `json:"fuel_type" yaml:"fuel_type" validate:"required"`
	PricePerDay  float64 `json:"price_per_day" yaml:"price_per_day" validate:"gt=0"`
	LocationID   int64   `json:"location_id" yaml:"location_id" validate:"gt=0"`
	ImageURL     string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
	Features     string  `json:"features,omitempty" yaml:"features,omitempty"`
}

// AddCarResponse represents the car creation response
type AddCarResponse struct {
	Message string `json:"message"`
	CarID   int64  `json:"car_id"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.Request(ctx, "/login", RequestOptions{
		Method: http.MethodPost,
		Body:   LoginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and starts a session for it
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.Request(ctx, "/register", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser resolves the profile of the current session
func (c *Client) CurrentUser(ctx context.Context) (*session.Profile, error) {
	var profile session.Profile
	if err := c.Request(ctx, "/user", RequestOptions{}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout ends the current session on the backend
func (c *Client) Logout(ctx context.Context) error {
	return c.Request(ctx, "/logout", RequestOptions{Method: http.MethodPost}, nil)
}

// Locations lists pickup locations
func (c *Client) Locations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := c.Request(ctx, "/locations", RequestOptions{}, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Cars lists available cars
func (c *Client) Cars(ctx context.Context, filter CarFilter) ([]Car, error) {
	var cars []Car
	if err := c.Request(ctx, "/cars"+filter.query(), RequestOptions{}, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// Car fetches one car with its location details
func (c *Client) Car(ctx context.Context, id int64) (*Car, error) {
	var car Car
	if err := c.Request(ctx, fmt.Sprintf("/cars/%d", id), RequestOptions{}, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// CheckAvailability asks whether a car is free between two dates
func (c *Client) CheckAvailability(ctx context.Context, req AvailabilityRequest) (bool, error) {
	var resp AvailabilityResponse
	err := c.Request(ctx, "/cars/check-availability", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Available, nil
}

// CreateBooking books a car for the current user
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	var resp CreateBookingResponse
	err := c.Request(ctx, "/bookings", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Bookings lists the current user's bookings
func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.Request(ctx, "/bookings", RequestOptions{}, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking cancels one of the current user's bookings
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.Request(ctx, fmt.Sprintf("/bookings/%d", id), RequestOptions{Method: http.MethodDelete}, nil)
}

// AddCar adds a car to the fleet (admin only)
func (c *Client) AddCar(ctx context.Context, car CarInput) (*AddCarResponse, error) {
	var resp AddCarResponse
	err := c.Request(ctx, "/admin/cars", RequestOptions{
		Method: http.MethodPost,
		Body:   car,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCar changes the given fields of a car (admin only)
func (c *Client) UpdateCar(ctx context.Context, id int64, fields map[string]any) error {
	return c.Request(ctx, fmt.Sprintf("/admin/cars/%d", id), RequestOptions{
		Method: http.MethodPut,
		Body:   fields,
	}, nil)
}

// AllBookings lists every booking (admin only)
func (c *Client) AllBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.Request(ctx, "/admin/bookings", RequestOptions{}, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
