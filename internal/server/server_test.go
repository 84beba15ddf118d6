package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentacar-dev/rentacar/internal/auth"
	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/credentials"
	"github.com/rentacar-dev/rentacar/internal/config"
	"github.com/rentacar-dev/rentacar/internal/models"
)

// testClock is a settable clock shared with the server's request goroutines
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func newTestServer(t *testing.T) (*Server, string) {
	return newTestServerWithClock(t, &testClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)})
}

func newTestServerWithClock(t *testing.T, clock *testClock) (*Server, string) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:          "5000",
			DatabaseURL:   "file::memory:",
			SessionSecret: "test-secret",
			CORSOrigins:   []string{"http://localhost:5000"},
		},
	}
	srv, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	srv.now = clock.Now
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return srv, ts.URL + "/api"
}

func newClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()
	c, err := client.New(baseURL, client.WithCookieStore(credentials.NewMemory()))
	require.NoError(t, err)
	return c
}

func requireStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	reqErr, ok := client.AsRequestError(err)
	require.True(t, ok, "expected a request error, got %v", err)
	assert.Equal(t, status, reqErr.StatusCode)
	assert.Equal(t, message, reqErr.Message)
}

func register(t *testing.T, c *client.Client, email string) *client.AuthResponse {
	t.Helper()
	resp, err := c.Register(context.Background(), client.RegisterRequest{
		FullName: "Jane Doe",
		Email:    email,
		Phone:    "555-0101",
		Password: "secret1",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthFlow(t *testing.T) {
	_, baseURL := newTestServer(t)
	ctx := context.Background()
	c := newClient(t, baseURL)

	_, err := c.CurrentUser(ctx)
	requireStatus(t, err, http.StatusUnauthorized, "Not authenticated")

	resp := register(t, c, "jane@example.com")
	assert.Equal(t, "Registration successful", resp.Message)
	assert.Equal(t, "Jane Doe", resp.User.FullName)
	assert.False(t, resp.User.IsAdmin)

	user, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, "555-0101", user.Phone)

	_, err = newClient(t, baseURL).Register(ctx, client.RegisterRequest{
		FullName: "Other", Email: "jane@example.com", Phone: "1", Password: "secret1",
	})
	requireStatus(t, err, http.StatusConflict, "Email already registered")

	require.NoError(t, c.Logout(ctx))
	_, err = c.CurrentUser(ctx)
	requireStatus(t, err, http.StatusUnauthorized, "Not authenticated")
}

func TestLogin(t *testing.T) {
	_, baseURL := newTestServer(t)
	ctx := context.Background()

	_, err := newClient(t, baseURL).Login(ctx, models.SeedAdminEmail, "wrong")
	requireStatus(t, err, http.StatusUnauthorized, "Invalid email or password")

	_, err = newClient(t, baseURL).Login(ctx, "nobody@example.com", "secret1")
	requireStatus(t, err, http.StatusUnauthorized, "Invalid email or password")

	_, err = newClient(t, baseURL).Login(ctx, "", "")
	requireStatus(t, err, http.StatusBadRequest, "Email and password required")

	admin := newClient(t, baseURL)
	resp, err := admin.Login(ctx, models.SeedAdminEmail, models.SeedAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)
	assert.True(t, resp.User.IsAdmin)
}

func TestCatalog(t *testing.T) {
	_, baseURL := newTestServer(t)
	ctx := context.Background()
	c := newClient(t, baseURL)

	locations, err := c.Locations(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, locations)
	for i := 1; i < len(locations); i++ {
		assert.LessOrEqual(t, locations[i-1].City, locations[i].City)
	}

	cars, err := c.Cars(ctx, client.CarFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, cars)
	for i := 1; i < len(cars); i++ {
		assert.LessOrEqual(t, cars[i-1].PricePerDay, cars[i].PricePerDay)
	}
	assert.NotEmpty(t, cars[0].LocationName)
	assert.NotEmpty(t, cars[0].City)

	maxPrice := 70.0
	cheap, err := c.Cars(ctx, client.CarFilter{MaxPrice: &maxPrice})
	require.NoError(t, err)
	for _, car := range cheap {
		assert.LessOrEqual(t, car.PricePerDay, maxPrice)
	}

	car, err := c.Car(ctx, cars[0].ID)
	require.NoError(t, err)
	assert.Equal(t, cars[0].Name, car.Name)
	assert.NotEmpty(t, car.Address)

	_, err = c.Car(ctx, 9999)
	requireStatus(t, err, http.StatusNotFound, "Car not found")
}

func TestBookingFlow(t *testing.T) {
	_, baseURL := newTestServer(t)
	ctx := context.Background()

	c := newClient(t, baseURL)
	register(t, c, "jane@example.com")

	cars, err := c.Cars(ctx, client.CarFilter{})
	require.NoError(t, err)
	car := cars[0]

	_, err = newClient(t, baseURL).Bookings(ctx)
	requireStatus(t, err, http.StatusUnauthorized, "Authentication required")

	_, err = c.CheckAvailability(ctx, client.AvailabilityRequest{CarID: car.ID, PickupDate: "2024-12-01", ReturnDate: "2024-12-03"})
	requireStatus(t, err, http.StatusBadRequest, "Pickup date cannot be in the past")

	_, err = c.CheckAvailability(ctx, client.AvailabilityRequest{CarID: car.ID, PickupDate: "2025-03-04", ReturnDate: "2025-03-01"})
	requireStatus(t, err, http.StatusBadRequest, "Return date must be after pickup date")

	available, err := c.CheckAvailability(ctx, client.AvailabilityRequest{CarID: car.ID, PickupDate: "2025-03-01", ReturnDate: "2025-03-04"})
	require.NoError(t, err)
	assert.True(t, available)

	booking := client.CreateBookingRequest{
		CarID:            car.ID,
		PickupDate:       "2025-03-01",
		ReturnDate:       "2025-03-04",
		PickupLocationID: car.LocationID,
		ReturnLocationID: car.LocationID,
		TotalPrice:       3 * car.PricePerDay,
	}
	created, err := c.CreateBooking(ctx, booking)
	require.NoError(t, err)
	assert.NotZero(t, created.BookingID)

	available, err = c.CheckAvailability(ctx, client.AvailabilityRequest{CarID: car.ID, PickupDate: "2025-03-03", ReturnDate: "2025-03-06"})
	require.NoError(t, err)
	assert.False(t, available)

	_, err = c.CreateBooking(ctx, booking)
	requireStatus(t, err, http.StatusConflict, "Car not available for selected dates")

	bookings, err := c.Bookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, car.Name, bookings[0].CarName)
	assert.Equal(t, client.StatusConfirmed, bookings[0].Status)
	assert.Equal(t, car.LocationName, bookings[0].PickupLocationName)
	assert.Empty(t, bookings[0].UserEmail)

	other := newClient(t, baseURL)
	register(t, other, "other@example.com")
	err = other.CancelBooking(ctx, created.BookingID)
	requireStatus(t, err, http.StatusNotFound, "Booking not found or unauthorized")

	require.NoError(t, c.CancelBooking(ctx, created.BookingID))
	bookings, err = c.Bookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, client.StatusCancelled, bookings[0].Status)

	available, err = c.CheckAvailability(ctx, client.AvailabilityRequest{CarID: car.ID, PickupDate: "2025-03-01", ReturnDate: "2025-03-04"})
	require.NoError(t, err)
	assert.True(t, available, "cancelled bookings free the car")
}

func TestAdminRoutes(t *testing.T) {
	_, baseURL := newTestServer(t)
	ctx := context.Background()

	customer := newClient(t, baseURL)
	register(t, customer, "jane@example.com")

	newCar := client.CarInput{
		Name: "Kia Picanto", Brand: "Kia", Model: "Picanto", Year: 2022, CarType: "Compact",
		Seats: 4, Transmission: "Manual", FuelType: "Gasoline", PricePerDay: 29.99, LocationID: 1,
	}

	_, err := customer.AddCar(ctx, newCar)
	requireStatus(t, err, http.StatusForbidden, "Admin privileges required")

	admin := newClient(t, baseURL)
	_, err = admin.Login(ctx, models.SeedAdminEmail, models.SeedAdminPassword)
	require.NoError(t, err)

	added, err := admin.AddCar(ctx, newCar)
	require.NoError(t, err)
	assert.Equal(t, "Car added successfully", added.Message)

	require.NoError(t, admin.UpdateCar(ctx, added.CarID, map[string]any{"id": 77, "price_per_day": 31.5}))
	car, err := admin.Car(ctx, added.CarID)
	require.NoError(t, err)
	assert.Equal(t, 31.5, car.PricePerDay)

	err = admin.UpdateCar(ctx, added.CarID, map[string]any{"password_hash": "x"})
	requireStatus(t, err, http.StatusBadRequest, "Unknown car field: password_hash")

	_, err = customer.CreateBooking(ctx, client.CreateBookingRequest{
		CarID: added.CarID, PickupDate: "2025-02-01", ReturnDate: "2025-02-03",
		PickupLocationID: 1, ReturnLocationID: 1, TotalPrice: 63,
	})
	require.NoError(t, err)

	all, err := admin.AllBookings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Jane Doe", all[0].UserName)
	assert.Equal(t, "jane@example.com", all[0].UserEmail)
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "01HZZTESTREQUEST")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "01HZZTESTREQUEST", w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, w.Header().Get(requestIDHeader), 26)
}

func TestSeedRunsOnce(t *testing.T) {
	srv, _ := newTestServer(t)
	db := srv.GetDB()

	var admins int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ? AND is_admin = ?", models.SeedAdminEmail, true).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)

	var cars int64
	require.NoError(t, db.Model(&models.Car{}).Count(&cars).Error)

	seeded, err := models.Seed(db, "unused")
	require.NoError(t, err)
	assert.False(t, seeded)

	var after int64
	require.NoError(t, db.Model(&models.Car{}).Count(&after).Error)
	assert.Equal(t, cars, after)
}

func TestSessionExpires(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := &testClock{now: start}
	_, baseURL := newTestServerWithClock(t, clock)
	ctx := context.Background()
	c := newClient(t, baseURL)
	register(t, c, "jane@example.com")

	_, err := c.CurrentUser(ctx)
	require.NoError(t, err)

	clock.Set(start.Add(auth.SessionTTL + time.Hour))

	_, err = c.CurrentUser(ctx)
	requireStatus(t, err, http.StatusUnauthorized, "Not authenticated")
}
