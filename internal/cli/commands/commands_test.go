package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/credentials"
	"github.com/rentacar-dev/rentacar/internal/cli/pages"
	"github.com/rentacar-dev/rentacar/internal/cli/storage"
	"github.com/rentacar-dev/rentacar/internal/config"
	"github.com/rentacar-dev/rentacar/internal/models"
	"github.com/rentacar-dev/rentacar/internal/server"
)

// testEnv is one user's machine: local storage and saved cookies survive
// between invocations the way the state dir and keychain do.
type testEnv struct {
	apiURL  string
	storage *storage.Memory
	cookies *credentials.Memory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:          "5000",
			DatabaseURL:   "file::memory:",
			SessionSecret: "test-secret",
		},
	}
	srv, err := server.New(cfg, zerolog.Nop(), "test")
	if err != nil {
		t.Fatalf("failed to start backend: %v", err)
	}
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{
		apiURL:  ts.URL + "/api",
		storage: storage.NewMemory(),
		cookies: credentials.NewMemory(),
	}
}

// invoke loads a fresh app, as every CLI invocation does
func (e *testEnv) invoke(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	app := NewApp("test")
	app.Out = &out
	app.Err = &bytes.Buffer{}
	app.storage = e.storage
	app.cookies = e.cookies

	if err := app.wire(context.Background(), &config.Config{}, e.apiURL); err != nil {
		t.Fatalf("failed to load app: %v", err)
	}
	return app, &out
}

func (e *testEnv) register(t *testing.T, email string) {
	t.Helper()
	app, _ := e.invoke(t)
	err := runRegister(context.Background(), app, pages.RegisterForm{
		FullName:        "Jane Doe",
		Email:           email,
		Phone:           "+1 555 010 1234",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
}

func (e *testEnv) cheapestCar(t *testing.T) client.Car {
	t.Helper()
	app, _ := e.invoke(t)
	cars, err := app.Client.Cars(context.Background(), client.CarFilter{})
	if err != nil || len(cars) == 0 {
		t.Fatalf("failed to list cars: %v", err)
	}
	return cars[0]
}

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	app, out := env.invoke(t)
	err := runLogin(ctx, app, pages.LoginForm{Email: models.SeedAdminEmail, Password: "wrong"})
	if !errors.Is(err, ErrAlertShown) {
		t.Fatalf("expected ErrAlertShown, got %v", err)
	}
	if !strings.Contains(out.String(), "Invalid email or password") {
		t.Errorf("expected backend message, got: %s", out.String())
	}

	app, out = env.invoke(t)
	if err := runLogin(ctx, app, pages.LoginForm{Email: models.SeedAdminEmail, Password: models.SeedAdminPassword}); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !strings.Contains(out.String(), "Login successful!") {
		t.Errorf("expected success alert, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "Role: Admin") {
		t.Errorf("expected admin role, got: %s", out.String())
	}

	// the next invocation picks the session up from the saved cookie
	app, out = env.invoke(t)
	if !app.Session.LoggedIn() {
		t.Fatal("expected to still be logged in")
	}
	if err := runStatus(app); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out.String(), "Logged in as Admin User") {
		t.Errorf("expected logged in user, got: %s", out.String())
	}

	app, out = env.invoke(t)
	if err := runLogout(ctx, app); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Errorf("expected logout alert, got: %s", out.String())
	}

	app, out = env.invoke(t)
	if app.Session.LoggedIn() {
		t.Fatal("expected to be logged out")
	}
	if err := runLogout(ctx, app); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !strings.Contains(out.String(), "Not logged in.") {
		t.Errorf("expected not logged in, got: %s", out.String())
	}
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	app, out := env.invoke(t)
	err := runRegister(context.Background(), app, pages.RegisterForm{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+1 555 010 1234",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	if !errors.Is(err, ErrAlertShown) {
		t.Fatalf("expected ErrAlertShown, got %v", err)
	}
	if !strings.Contains(out.String(), "Passwords do not match") {
		t.Errorf("expected mismatch message, got: %s", out.String())
	}
	if app.Session.LoggedIn() {
		t.Error("expected no session after a rejected form")
	}
}

func TestBrowse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	app, out := env.invoke(t)
	if err := runCars(ctx, app, pages.Filters{}, false); err != nil {
		t.Fatalf("cars failed: %v", err)
	}
	if !strings.Contains(out.String(), "Showing ") {
		t.Errorf("expected results info, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "PER DAY") {
		t.Errorf("expected table header, got: %s", out.String())
	}
	if strings.Contains(out.String(), "EST. TOTAL") {
		t.Errorf("expected no totals without dates, got: %s", out.String())
	}

	app, out = env.invoke(t)
	filters := pages.Filters{MinPrice: "100000"}
	if err := runCars(ctx, app, filters, true); err != nil {
		t.Fatalf("cars failed: %v", err)
	}
	if !strings.Contains(out.String(), "No cars found") {
		t.Errorf("expected no results, got: %s", out.String())
	}

	app, out = env.invoke(t)
	filters = pages.Filters{Pickup: "2099-03-01", Return: "2099-03-04"}
	if err := runCars(ctx, app, filters, true); err != nil {
		t.Fatalf("cars failed: %v", err)
	}
	if !strings.Contains(out.String(), "EST. TOTAL") {
		t.Errorf("expected estimated totals, got: %s", out.String())
	}

	car := env.cheapestCar(t)
	app, out = env.invoke(t)
	if err := runCar(ctx, app, car.ID); err != nil {
		t.Fatalf("car failed: %v", err)
	}
	if !strings.Contains(out.String(), car.Name) {
		t.Errorf("expected car name %q, got: %s", car.Name, out.String())
	}
	if !strings.Contains(out.String(), fmt.Sprintf("rentacar book %d", car.ID)) {
		t.Errorf("expected booking hint, got: %s", out.String())
	}

	app, out = env.invoke(t)
	if err := runCar(ctx, app, 9999); !errors.Is(err, ErrAlertShown) {
		t.Fatalf("expected ErrAlertShown, got %v", err)
	}
	if !strings.Contains(out.String(), "Car not found") {
		t.Errorf("expected not found message, got: %s", out.String())
	}
}

func TestBookAndCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	car := env.cheapestCar(t)

	form := pages.BookingForm{CarID: car.ID, PickupDate: "2099-03-01", ReturnDate: "2099-03-04"}

	app, out := env.invoke(t)
	if err := runBook(ctx, app, form); !errors.Is(err, ErrAlertShown) {
		t.Fatalf("expected ErrAlertShown, got %v", err)
	}
	if !strings.Contains(out.String(), "Please log in to book a car") {
		t.Errorf("expected login prompt, got: %s", out.String())
	}

	app, _ = env.invoke(t)
	if err := runBookings(ctx, app); !errors.Is(err, pages.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}

	env.register(t, "jane@example.com")

	app, out = env.invoke(t)
	if err := runBookings(ctx, app); err != nil {
		t.Fatalf("bookings failed: %v", err)
	}
	if !strings.Contains(out.String(), "Welcome, Jane Doe!") || !strings.Contains(out.String(), "No bookings yet.") {
		t.Errorf("expected empty dashboard, got: %s", out.String())
	}

	app, out = env.invoke(t)
	if err := runBook(ctx, app, form); err != nil {
		t.Fatalf("book failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "confirmed: "+car.Name+" for 3 day(s)") {
		t.Errorf("expected confirmation, got: %s", out.String())
	}

	app, out = env.invoke(t)
	if err := runBook(ctx, app, form); !errors.Is(err, ErrAlertShown) {
		t.Fatalf("expected ErrAlertShown, got %v", err)
	}
	if !strings.Contains(out.String(), "Car not available for selected dates") {
		t.Errorf("expected conflict message, got: %s", out.String())
	}

	app, _ = env.invoke(t)
	bookings, err := app.Client.Bookings(ctx)
	if err != nil || len(bookings) != 1 {
		t.Fatalf("expected one booking, got %d (%v)", len(bookings), err)
	}
	id := bookings[0].ID

	app, out = env.invoke(t)
	if err := runBookings(ctx, app); err != nil {
		t.Fatalf("bookings failed: %v", err)
	}
	if !strings.Contains(out.String(), "rentacar cancel <id>") {
		t.Errorf("expected cancel hint, got: %s", out.String())
	}

	app, out = env.invoke(t)
	cmd := NewCancelCmd(app)
	cmd.SetArgs([]string{fmt.Sprint(id), "--yes"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if !strings.Contains(out.String(), "Booking cancelled successfully") {
		t.Errorf("expected cancel alert, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "Welcome, Jane Doe!") {
		t.Errorf("expected reloaded dashboard, got: %s", out.String())
	}

	// someone else's booking
	env.register(t, "other@example.com")
	app, out = env.invoke(t)
	if err := runCancel(ctx, app, id); !errors.Is(err, ErrAlertShown) {
		t.Fatalf("expected ErrAlertShown, got %v", err)
	}
	if !strings.Contains(out.String(), "Booking not found or unauthorized") {
		t.Errorf("expected not found message, got: %s", out.String())
	}
}

func TestAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dir := t.TempDir()
	carFile := filepath.Join(dir, "car.yaml")
	err := os.WriteFile(carFile, []byte(`name: Kia Picanto
brand: Kia
model: Picanto
year: 2022
car_type: Compact
seats: 4
transmission: Manual
fuel_type: Gasoline
price_per_day: 29.99
location_id: 1
`), 0644)
	if err != nil {
		t.Fatalf("failed to write car file: %v", err)
	}
	updateFile := filepath.Join(dir, "update.json")
	if err := os.WriteFile(updateFile, []byte(`{"price_per_day": 31.5}`), 0644); err != nil {
		t.Fatalf("failed to write update file: %v", err)
	}

	env.register(t, "jane@example.com")
	app, out := env.invoke(t)
	if err := runAdminBookings(ctx, app); !errors.Is(err, ErrAlertShown) {
		t.Fatalf("expected ErrAlertShown, got %v", err)
	}
	if !strings.Contains(out.String(), "Admin privileges required") {
		t.Errorf("expected admin required, got: %s", out.String())
	}

	app, _ = env.invoke(t)
	if err := runLogin(ctx, app, pages.LoginForm{Email: models.SeedAdminEmail, Password: models.SeedAdminPassword}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	app, out = env.invoke(t)
	cmd := NewAdminCmd(app)
	cmd.SetArgs([]string{"add-car", "-f", carFile})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("add-car failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Car added successfully") {
		t.Errorf("expected add alert, got: %s", out.String())
	}

	app, _ = env.invoke(t)
	cars, err := app.Client.Cars(ctx, client.CarFilter{})
	if err != nil {
		t.Fatalf("failed to list cars: %v", err)
	}
	var added *client.Car
	for i := range cars {
		if cars[i].Name == "Kia Picanto" {
			added = &cars[i]
		}
	}
	if added == nil {
		t.Fatal("expected the new car in the catalog")
	}

	app, out = env.invoke(t)
	cmd = NewAdminCmd(app)
	cmd.SetArgs([]string{"update-car", fmt.Sprint(added.ID), "-f", updateFile})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("update-car failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Car updated successfully") {
		t.Errorf("expected update alert, got: %s", out.String())
	}

	app, out = env.invoke(t)
	if err := runAdminBookings(ctx, app); err != nil {
		t.Fatalf("admin bookings failed: %v", err)
	}
	if !strings.Contains(out.String(), "No bookings yet") {
		t.Errorf("expected empty list, got: %s", out.String())
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "12", want: 12},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseID("car", tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
