package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
	"github.com/rentacar-dev/rentacar/internal/format"
)

const bookingDateLayout = "2006-01-02"

// BookingForm is what the car details screen collects to book a car.
// Zero location ids default to the car's own location.
type BookingForm struct {
	CarID            int64
	PickupDate       string
	ReturnDate       string
	PickupLocationID int64
	ReturnLocationID int64
}

// Book checks availability and books the car for the logged-in user
func (p *Pages) Book(ctx context.Context, form BookingForm) *view.Alert {
	if !p.session.LoggedIn() {
		return view.Error("Please log in to book a car")
	}

	pickup, err := time.Parse(bookingDateLayout, form.PickupDate)
	if err != nil {
		return view.Error("Invalid date format. Use YYYY-MM-DD")
	}
	ret, err := time.Parse(bookingDateLayout, form.ReturnDate)
	if err != nil {
		return view.Error("Invalid date format. Use YYYY-MM-DD")
	}
	if !pickup.Before(ret) {
		return view.Error("Return date must be after pickup date")
	}
	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if pickup.Before(today) {
		return view.Error("Pickup date cannot be in the past")
	}

	car, err := p.api.Car(ctx, form.CarID)
	if err != nil {
		return view.Error(err.Error())
	}

	available, err := p.api.CheckAvailability(ctx, client.AvailabilityRequest{
		CarID:      car.ID,
		PickupDate: form.PickupDate,
		ReturnDate: form.ReturnDate,
	})
	if err != nil {
		return view.Error(err.Error())
	}
	if !available {
		return view.Error("Car not available for selected dates")
	}

	pickupLocation := form.PickupLocationID
	if pickupLocation == 0 {
		pickupLocation = car.LocationID
	}
	returnLocation := form.ReturnLocationID
	if returnLocation == 0 {
		returnLocation = pickupLocation
	}

	days := format.DaysBetween(pickup, ret)
	total := float64(days) * car.PricePerDay

	resp, err := p.api.CreateBooking(ctx, client.CreateBookingRequest{
		CarID:            car.ID,
		PickupDate:       form.PickupDate,
		ReturnDate:       form.ReturnDate,
		PickupLocationID: pickupLocation,
		ReturnLocationID: returnLocation,
		TotalPrice:       total,
	})
	if err != nil {
		return view.Error(err.Error())
	}

	return view.Success(fmt.Sprintf("Booking #%d confirmed: %s for %d day(s), total %s",
		resp.BookingID, car.Name, days, format.FormatCurrency(total)))
}
