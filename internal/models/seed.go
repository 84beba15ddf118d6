package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Default admin account created on an empty database
const (
	SeedAdminEmail    = "admin@carrental.com"
	SeedAdminPassword = "admin123"
)

var seedLocations = []Location{
	{Name: "Downtown Office", City: "New York", State: "NY", Country: "USA", Address: "123 Main St, New York, NY 10001"},
	{Name: "JFK Airport", City: "New York", State: "NY", Country: "USA", Address: "JFK Airport Terminal 4, Queens, NY 11430"},
	{Name: "LAX Airport", City: "Los Angeles", State: "CA", Country: "USA", Address: "1 World Way, Los Angeles, CA 90045"},
	{Name: "Andheri Hub", City: "Mumbai", State: "Maharashtra", Country: "India", Address: "Shop 12, Andheri West, Mumbai, Maharashtra 400053"},
	{Name: "Koramangala Station", City: "Bangalore", State: "Karnataka", Country: "India", Address: "45 Koramangala 4th Block, Bangalore, Karnataka 560034"},
}

// seedCars refer to seedLocations by position
var seedCars = []struct {
	location int
	car      Car
}{
	{0, Car{Name: "Toyota Camry", Brand: "Toyota", Model: "Camry", Year: 2023, CarType: "Sedan", Seats: 5, Transmission: "Automatic", FuelType: "Gasoline", PricePerDay: 45, Description: "Reliable mid-size sedan with great fuel economy.", Features: "Bluetooth, Backup Camera, Cruise Control"}},
	{1, Car{Name: "Honda CR-V", Brand: "Honda", Model: "CR-V", Year: 2023, CarType: "SUV", Seats: 5, Transmission: "Automatic", FuelType: "Gasoline", PricePerDay: 65, Description: "Spacious compact SUV for city and highway.", Features: "AWD, Apple CarPlay, Lane Assist"}},
	{1, Car{Name: "BMW 5 Series", Brand: "BMW", Model: "5 Series", Year: 2024, CarType: "Luxury", Seats: 5, Transmission: "Automatic", FuelType: "Gasoline", PricePerDay: 120, Description: "Executive sedan with a refined ride.", Features: "Leather Seats, Heated Seats, Premium Audio"}},
	{2, Car{Name: "Tesla Model 3", Brand: "Tesla", Model: "Model 3", Year: 2024, CarType: "Electric", Seats: 5, Transmission: "Automatic", FuelType: "Electric", PricePerDay: 90, Description: "All-electric sedan with Autopilot.", Features: "Autopilot, Glass Roof, Supercharging"}},
	{2, Car{Name: "Ford Mustang", Brand: "Ford", Model: "Mustang", Year: 2023, CarType: "Sports", Seats: 4, Transmission: "Manual", FuelType: "Gasoline", PricePerDay: 110, Description: "Iconic American muscle car.", Features: "V8, Convertible, Sport Mode"}},
	{3, Car{Name: "Tata Nexon EV", Brand: "Tata", Model: "Nexon", Year: 2024, CarType: "Electric SUV", Seats: 5, Transmission: "Automatic", FuelType: "Electric", PricePerDay: 85, Description: "Popular Indian electric SUV with great range and features.", Features: "Connected Car Tech, Sunroof, Fast Charging, Safety Features"}},
	{4, Car{Name: "Skoda Octavia", Brand: "Skoda", Model: "Octavia", Year: 2024, CarType: "Sedan", Seats: 5, Transmission: "Automatic", FuelType: "Petrol", PricePerDay: 85, Description: "European sedan with premium features and comfort.", Features: "Virtual Cockpit, Ambient Lighting, Sunroof, Premium Audio"}},
}

// Seed fills an empty database with locations, cars and the admin
// account. adminHash is the password hash for SeedAdminPassword. It does
// nothing once any location exists.
func Seed(db *gorm.DB, adminHash string) (bool, error) {
	var count int64
	if err := db.Model(&Location{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count locations: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		locations := make([]Location, len(seedLocations))
		copy(locations, seedLocations)
		if err := tx.Create(&locations).Error; err != nil {
			return fmt.Errorf("failed to seed locations: %w", err)
		}

		for _, sc := range seedCars {
			car := sc.car
			car.LocationID = locations[sc.location].ID
			car.Available = true
			if err := tx.Create(&car).Error; err != nil {
				return fmt.Errorf("failed to seed car %s: %w", car.Name, err)
			}
		}

		admin := &User{
			Email:        SeedAdminEmail,
			PasswordHash: adminHash,
			FullName:     "Admin User",
			Phone:        "555-0100",
			IsAdmin:      true,
		}
		if err := tx.Where("email = ?", admin.Email).FirstOrCreate(admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
