package pages

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
)

// adminRequired is the alert for non-admin users
func (p *Pages) adminRequired() *view.Alert {
	if !p.session.Store().IsAdmin() {
		return view.Error("Admin privileges required")
	}
	return nil
}

// LoadCarFile reads a car definition for AddCar. JSON files load too.
func LoadCarFile(path string) (client.CarInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return client.CarInput{}, fmt.Errorf("failed to read car file: %w", err)
	}

	var car client.CarInput
	if err := yaml.Unmarshal(data, &car); err != nil {
		return client.CarInput{}, fmt.Errorf("failed to parse car file: %w", err)
	}
	return car, nil
}

// LoadCarUpdateFile reads the fields to change for UpdateCar
func LoadCarUpdateFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read car file: %w", err)
	}

	fields := map[string]any{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse car file: %w", err)
	}
	delete(fields, "id")
	if len(fields) == 0 {
		return nil, fmt.Errorf("car file %s has no fields to update", path)
	}
	return fields, nil
}

// AddCar validates and submits a new car
func (p *Pages) AddCar(ctx context.Context, car client.CarInput) *view.Alert {
	if alert := p.adminRequired(); alert != nil {
		return alert
	}
	if err := p.validate.Struct(car); err != nil {
		return view.Error(fmt.Sprintf("Invalid car definition: %v", err))
	}

	resp, err := p.api.AddCar(ctx, car)
	if err != nil {
		return view.Error(err.Error())
	}
	return view.Success(fmt.Sprintf("Car added successfully (id %d)", resp.CarID))
}

// UpdateCar submits changed car fields
func (p *Pages) UpdateCar(ctx context.Context, id int64, fields map[string]any) *view.Alert {
	if alert := p.adminRequired(); alert != nil {
		return alert
	}

	if err := p.api.UpdateCar(ctx, id, fields); err != nil {
		return view.Error(err.Error())
	}
	return view.Success("Car updated successfully")
}

// AdminBookings lists every booking in the system
func (p *Pages) AdminBookings(ctx context.Context) ([]view.BookingCard, *view.Alert) {
	if alert := p.adminRequired(); alert != nil {
		return nil, alert
	}

	bookings, err := p.api.AllBookings(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to load bookings")
		return nil, view.Error("Failed to load bookings")
	}
	if len(bookings) == 0 {
		return nil, view.Info("No bookings yet")
	}
	return bookingCards(bookings), nil
}
