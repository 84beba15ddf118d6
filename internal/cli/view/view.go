// Package view holds the view models produced by page functions and the
// renderer that writes them to a terminal. Page functions never write output
// themselves; commands hand their views to a Renderer.
package view

// AlertKind classifies an alert
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertInfo    AlertKind = "info"
)

// Alert is a one-off message shown to the user
type Alert struct {
	Kind    AlertKind
	Message string
}

func Success(msg string) *Alert { return &Alert{Kind: AlertSuccess, Message: msg} }
func Error(msg string) *Alert   { return &Alert{Kind: AlertError, Message: msg} }
func Info(msg string) *Alert    { return &Alert{Kind: AlertInfo, Message: msg} }

// IsError reports whether the alert is an error alert
func (a *Alert) IsError() bool {
	return a != nil && a.Kind == AlertError
}

// Link is a navigation entry. Links with an Action trigger a command instead of opening a page.
type Link struct {
	Label   string
	Target  string
	Action  string
	Primary bool
}

// Navigation is the header menu for the current auth state
type Navigation struct {
	Authenticated bool
	UserName      string
	Links         []Link
}

// Option is a selectable value, e.g. a location in the filter sidebar
type Option struct {
	Value string
	Label string
}

// CarCard is one car in the browse grid. EstimatedTotal is set when both
// rental dates are known.
type CarCard struct {
	ID             int64
	Name           string
	Badge          string
	Location       string
	Seats          int
	Transmission   string
	FuelType       string
	Price          string
	EstimatedTotal string
	DetailsTarget  string
}

// CarGrid is the browse page result
type CarGrid struct {
	ResultsInfo string
	Cards       []CarCard
	NoResults   bool
	Locations   []Option
}

// CarDetails is the car detail page
type CarDetails struct {
	Title       string
	Subtitle    string
	Location    string
	Facts       [][2]string
	Price       string
	Description string
	Features    []string
}

// BookingCard is one booking on the dashboard
type BookingCard struct {
	ID        int64
	CarName   string
	Vehicle   string
	Dates     string
	Location  string
	Status    string
	Total     string
	Customer  string
	CanCancel bool
}

// Dashboard is the user dashboard page
type Dashboard struct {
	Welcome    string
	Bookings   []BookingCard
	NoBookings bool
	Alert      *Alert
}
