package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel provides the integer primary key and creation time shared by all models
type BaseModel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Booking statuses
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// User represents a customer or admin account
type User struct {
	BaseModel
	Email        string `json:"email" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"full_name" gorm:"not null"`
	Phone        string `json:"phone"`
	IsAdmin      bool   `json:"is_admin" gorm:"not null;default:false"`
}

// Location is a pickup/return branch
type Location struct {
	BaseModel
	Name    string `json:"name" gorm:"not null"`
	City    string `json:"city" gorm:"not null"`
	State   string `json:"state"`
	Country string `json:"country"`
	Address string `json:"address"`
}

// Car is a rentable vehicle parked at a location
type Car struct {
	BaseModel
	Name         string  `json:"name" gorm:"not null"`
	Brand        string  `json:"brand" gorm:"not null"`
	Model        string  `json:"model" gorm:"not null"`
	Year         int     `json:"year" gorm:"not null"`
	CarType      string  `json:"car_type" gorm:"not null"`
	Seats        int     `json:"seats" gorm:"not null"`
	Transmission string  `json:"transmission" gorm:"not null"`
	FuelType     string  `json:"fuel_type" gorm:"not null"`
	PricePerDay  float64 `json:"price_per_day" gorm:"not null"`
	LocationID   int64   `json:"location_id" gorm:"not null;index"`
	ImageURL     string  `json:"image_url"`
	Description  string  `json:"description"`
	Features     string  `json:"features"` // comma separated
	Available    bool    `json:"available" gorm:"not null;default:true"`
}

// Booking reserves a car for a date range. Dates are stored as YYYY-MM-DD
// so that range checks compare lexically.
type Booking struct {
	BaseModel
	UserID           int64   `json:"user_id" gorm:"not null;index"`
	CarID            int64   `json:"car_id" gorm:"not null;index"`
	PickupDate       string  `json:"pickup_date" gorm:"type:varchar(10);not null"`
	ReturnDate       string  `json:"return_date" gorm:"type:varchar(10);not null"`
	PickupLocationID int64   `json:"pickup_location_id" gorm:"not null"`
	ReturnLocationID int64   `json:"return_location_id" gorm:"not null"`
	TotalPrice       float64 `json:"total_price" gorm:"not null"`
	Status           string  `json:"status" gorm:"not null;default:confirmed"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&User{}, &Location{}, &Car{}, &Booking{},
	}

	return db.AutoMigrate(models...)
}

// FindByID finds a record by its integer ID
func FindByID[T any](db *gorm.DB, id int64, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}
