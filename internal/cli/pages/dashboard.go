package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
	"github.com/rentacar-dev/rentacar/internal/format"
)

// Dashboard shows the logged-in user's bookings
func (p *Pages) Dashboard(ctx context.Context) (view.Dashboard, error) {
	user := p.session.User()
	if user == nil {
		return view.Dashboard{}, ErrLoginRequired
	}

	dash := view.Dashboard{Welcome: fmt.Sprintf("Welcome, %s!", user.FullName)}

	bookings, err := p.api.Bookings(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to load bookings")
		dash.Alert = view.Error("Failed to load bookings")
		return dash, nil
	}

	if len(bookings) == 0 {
		dash.NoBookings = true
		return dash, nil
	}

	dash.Bookings = bookingCards(bookings)
	return dash, nil
}

// CancelBooking cancels a booking and reloads the dashboard on success
func (p *Pages) CancelBooking(ctx context.Context, id int64) (*view.Alert, *view.Dashboard) {
	if err := p.api.CancelBooking(ctx, id); err != nil {
		return view.Error(err.Error()), nil
	}

	alert := view.Success("Booking cancelled successfully")
	dash, err := p.Dashboard(ctx)
	if err != nil {
		return alert, nil
	}
	return alert, &dash
}

func bookingCards(bookings []client.Booking) []view.BookingCard {
	cards := make([]view.BookingCard, 0, len(bookings))
	for _, b := range bookings {
		card := view.BookingCard{
			ID:        b.ID,
			CarName:   b.CarName,
			Vehicle:   strings.TrimSpace(b.Brand + " " + b.Model),
			Dates:     fmt.Sprintf("%s - %s", format.FormatDate(b.PickupDate), format.FormatDate(b.ReturnDate)),
			Location:  b.PickupLocationName,
			Status:    b.Status,
			Total:     format.FormatCurrency(b.TotalPrice),
			CanCancel: b.Status == client.StatusConfirmed,
		}
		if b.UserName != "" || b.UserEmail != "" {
			card.Customer = strings.TrimSpace(fmt.Sprintf("%s <%s>", b.UserName, b.UserEmail))
		}
		cards = append(cards, card)
	}
	return cards
}
