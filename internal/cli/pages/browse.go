package pages

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
	"github.com/rentacar-dev/rentacar/internal/format"
)

// Filters are the browse sidebar inputs. Prices are kept as typed; an
// unparsable or zero value means "no bound".
type Filters struct {
	LocationID string
	CarType    string
	MinPrice   string
	MaxPrice   string
	Pickup     string
	Return     string
}

// FiltersFromQuery reads a browse query string (location, pickup, return,
// type, min_price, max_price). The second result reports whether the query
// asks for filters to be applied on load.
func FiltersFromQuery(rawQuery string) (Filters, bool, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Filters{}, false, fmt.Errorf("invalid browse query: %w", err)
	}

	f := Filters{
		LocationID: values.Get("location"),
		CarType:    values.Get("type"),
		MinPrice:   values.Get("min_price"),
		MaxPrice:   values.Get("max_price"),
		Pickup:     values.Get("pickup"),
		Return:     values.Get("return"),
	}
	apply := values.Has("location") || values.Has("pickup") || values.Has("return") ||
		values.Has("type") || values.Has("min_price") || values.Has("max_price")
	return f, apply, nil
}

// Merge overlays the non-empty fields of other on f
func (f Filters) Merge(other Filters) Filters {
	if other.LocationID != "" {
		f.LocationID = other.LocationID
	}
	if other.CarType != "" {
		f.CarType = other.CarType
	}
	if other.MinPrice != "" {
		f.MinPrice = other.MinPrice
	}
	if other.MaxPrice != "" {
		f.MaxPrice = other.MaxPrice
	}
	if other.Pickup != "" {
		f.Pickup = other.Pickup
	}
	if other.Return != "" {
		f.Return = other.Return
	}
	return f
}

// FilterCars applies the sidebar filters to the loaded cars
func FilterCars(cars []client.Car, f Filters) []client.Car {
	minPrice := parsePrice(f.MinPrice, 0)
	maxPrice := parsePrice(f.MaxPrice, math.Inf(1))

	filtered := make([]client.Car, 0, len(cars))
	for _, car := range cars {
		if f.LocationID != "" && !sameLocation(car.LocationID, f.LocationID) {
			continue
		}
		if f.CarType != "" && car.CarType != f.CarType {
			continue
		}
		if car.PricePerDay < minPrice || car.PricePerDay > maxPrice {
			continue
		}
		filtered = append(filtered, car)
	}
	return filtered
}

func parsePrice(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v == 0 || math.IsNaN(v) {
		return fallback
	}
	return v
}

// sameLocation compares a numeric id with a form value the way a loose
// equality would: numerically when the value is a number.
func sameLocation(id int64, value string) bool {
	if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return float64(id) == v
	}
	return strconv.FormatInt(id, 10) == value
}

// Locations loads the location options. Failures are logged and yield none.
func (p *Pages) Locations(ctx context.Context) []view.Option {
	locations, err := p.api.Locations(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to load locations")
		return nil
	}

	options := make([]view.Option, 0, len(locations))
	for _, loc := range locations {
		options = append(options, view.Option{
			Value: strconv.FormatInt(loc.ID, 10),
			Label: fmt.Sprintf("%s, %s", loc.Name, loc.City),
		})
	}
	return options
}

// Browse loads locations and cars, applies the filters when asked to, and
// returns the grid.
func (p *Pages) Browse(ctx context.Context, f Filters, apply bool) view.CarGrid {
	grid := view.CarGrid{Locations: p.Locations(ctx)}

	cars, err := p.api.Cars(ctx, client.CarFilter{})
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to load cars")
		grid.ResultsInfo = "Failed to load cars"
		return grid
	}

	if apply {
		cars = FilterCars(cars, f)
	}

	if len(cars) == 0 {
		grid.NoResults = true
		grid.ResultsInfo = "No cars found"
		return grid
	}

	plural := "s"
	if len(cars) == 1 {
		plural = ""
	}
	grid.ResultsInfo = fmt.Sprintf("Showing %d car%s", len(cars), plural)

	days := 0
	if f.Pickup != "" && f.Return != "" {
		if d, err := format.CalculateDays(f.Pickup, f.Return); err == nil {
			days = d
		}
	}

	grid.Cards = make([]view.CarCard, 0, len(cars))
	for _, car := range cars {
		card := view.CarCard{
			ID:            car.ID,
			Name:          car.Name,
			Badge:         car.CarType,
			Location:      fmt.Sprintf("%s, %s", car.LocationName, car.City),
			Seats:         car.Seats,
			Transmission:  car.Transmission,
			FuelType:      car.FuelType,
			Price:         format.FormatCurrency(car.PricePerDay),
			DetailsTarget: fmt.Sprintf("car %d", car.ID),
		}
		if days > 0 {
			card.EstimatedTotal = format.FormatCurrency(float64(days) * car.PricePerDay)
		}
		grid.Cards = append(grid.Cards, card)
	}
	return grid
}

// CarDetails loads one car
func (p *Pages) CarDetails(ctx context.Context, id int64) (view.CarDetails, *view.Alert) {
	car, err := p.api.Car(ctx, id)
	if err != nil {
		return view.CarDetails{}, view.Error(err.Error())
	}

	location := car.LocationName
	if car.City != "" {
		location = fmt.Sprintf("%s, %s", car.LocationName, car.City)
	}
	if car.Address != "" {
		location = fmt.Sprintf("%s (%s)", location, car.Address)
	}

	details := view.CarDetails{
		Title:    car.Name,
		Subtitle: strings.TrimSpace(fmt.Sprintf("%s %s %s", yearString(car.Year), car.Brand, car.Model)),
		Location: location,
		Facts: [][2]string{
			{"Type", car.CarType},
			{"Seats", strconv.Itoa(car.Seats)},
			{"Transmission", car.Transmission},
			{"Fuel", car.FuelType},
		},
		Price:       format.FormatCurrency(car.PricePerDay),
		Description: car.Description,
	}
	for _, feature := range strings.Split(car.Features, ",") {
		if f := strings.TrimSpace(feature); f != "" {
			details.Features = append(details.Features, f)
		}
	}
	return details, nil
}

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
