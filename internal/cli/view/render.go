package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Renderer writes views to a terminal
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Alert prints a single alert line
func (r *Renderer) Alert(a *Alert) {
	if a == nil {
		return
	}
	var icon string
	switch a.Kind {
	case AlertSuccess:
		icon = "✓"
	case AlertError:
		icon = "✗"
	default:
		icon = "ℹ"
	}
	fmt.Fprintf(r.out, "%s %s\n", icon, a.Message)
}

// Navigation prints the header menu on one line
func (r *Renderer) Navigation(n Navigation) {
	labels := make([]string, 0, len(n.Links))
	for _, link := range n.Links {
		label := link.Label
		if link.Action != "" {
			label = fmt.Sprintf("%s (rentacar %s)", link.Label, link.Action)
		} else if link.Primary {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	if n.Authenticated && n.UserName != "" {
		fmt.Fprintf(r.out, "Signed in as %s\n", n.UserName)
	}
	fmt.Fprintln(r.out, strings.Join(labels, " | "))
	fmt.Fprintln(r.out)
}

// Locations prints the location options
func (r *Renderer) Locations(options []Option) {
	if len(options) == 0 {
		fmt.Fprintln(r.out, "No locations found.")
		return
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLOCATION")
	fmt.Fprintln(w, "──\t────────")
	for _, o := range options {
		fmt.Fprintf(w, "%s\t%s\n", o.Value, o.Label)
	}
	w.Flush()
}

// CarGrid prints the browse results as a table
func (r *Renderer) CarGrid(g CarGrid) {
	fmt.Fprintln(r.out, g.ResultsInfo)
	if g.NoResults || len(g.Cards) == 0 {
		return
	}
	fmt.Fprintln(r.out)

	withTotal := false
	for _, card := range g.Cards {
		if card.EstimatedTotal != "" {
			withTotal = true
			break
		}
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	if withTotal {
		fmt.Fprintln(w, "ID\tCAR\tTYPE\tLOCATION\tSEATS\tTRANSMISSION\tFUEL\tPER DAY\tEST. TOTAL")
		fmt.Fprintln(w, "──\t───\t────\t────────\t─────\t────────────\t────\t───────\t──────────")
	} else {
		fmt.Fprintln(w, "ID\tCAR\tTYPE\tLOCATION\tSEATS\tTRANSMISSION\tFUEL\tPER DAY")
		fmt.Fprintln(w, "──\t───\t────\t────────\t─────\t────────────\t────\t───────")
	}
	for _, card := range g.Cards {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s",
			card.ID,
			card.Name,
			card.Badge,
			card.Location,
			card.Seats,
			card.Transmission,
			card.FuelType,
			card.Price,
		)
		if withTotal {
			fmt.Fprintf(w, "\t%s", card.EstimatedTotal)
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	fmt.Fprintln(r.out, "\nView details with: rentacar car <id>")
}

// CarDetails prints a single car
func (r *Renderer) CarDetails(d CarDetails) {
	fmt.Fprintln(r.out, d.Title)
	if d.Subtitle != "" {
		fmt.Fprintln(r.out, d.Subtitle)
	}
	fmt.Fprintf(r.out, "📍 %s\n\n", d.Location)

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, fact := range d.Facts {
		fmt.Fprintf(w, "  %s:\t%s\n", fact[0], fact[1])
	}
	w.Flush()

	fmt.Fprintf(r.out, "\n%s per day\n", d.Price)
	if d.Description != "" {
		fmt.Fprintf(r.out, "\n%s\n", d.Description)
	}
	if len(d.Features) > 0 {
		fmt.Fprintln(r.out, "\nFeatures:")
		for _, f := range d.Features {
			fmt.Fprintf(r.out, "  • %s\n", f)
		}
	}
}

// Dashboard prints the welcome line and the booking list
func (r *Renderer) Dashboard(d Dashboard) {
	if d.Welcome != "" {
		fmt.Fprintf(r.out, "%s\n\n", d.Welcome)
	}
	r.Alert(d.Alert)
	if d.Alert.IsError() {
		return
	}
	if d.NoBookings {
		fmt.Fprintln(r.out, "No bookings yet.")
		fmt.Fprintln(r.out, "\nFind a car with: rentacar cars")
		return
	}
	r.Bookings(d.Bookings)
}

// Bookings prints booking cards as a table
func (r *Renderer) Bookings(cards []BookingCard) {
	withCustomer := false
	for _, card := range cards {
		if card.Customer != "" {
			withCustomer = true
			break
		}
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	if withCustomer {
		fmt.Fprintln(w, "ID\tCUSTOMER\tCAR\tDATES\tSTATUS\tTOTAL")
		fmt.Fprintln(w, "──\t────────\t───\t─────\t──────\t─────")
	} else {
		fmt.Fprintln(w, "ID\tCAR\tDATES\tPICKUP\tSTATUS\tTOTAL")
		fmt.Fprintln(w, "──\t───\t─────\t──────\t──────\t─────")
	}

	cancellable := false
	for _, card := range cards {
		if card.CanCancel {
			cancellable = true
		}
		if withCustomer {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				card.ID, card.Customer, card.CarName, card.Dates, card.Status, card.Total)
			continue
		}
		car := card.CarName
		if card.Vehicle != "" {
			car = fmt.Sprintf("%s (%s)", card.CarName, card.Vehicle)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			card.ID, car, card.Dates, card.Location, card.Status, card.Total)
	}
	w.Flush()

	if cancellable && !withCustomer {
		fmt.Fprintln(r.out, "\nCancel a confirmed booking with: rentacar cancel <id>")
	}
}
