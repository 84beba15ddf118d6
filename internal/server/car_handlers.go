package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentacar-dev/rentacar/internal/models"
)

const dateLayout = "2006-01-02"

// CarDetail is a car joined with its location
type CarDetail struct {
	models.Car
	LocationName string `json:"location_name"`
	City         string `json:"city"`
	Address      string `json:"address,omitempty"`
}

// AvailabilityRequest asks whether a car is free for a date range
type AvailabilityRequest struct {
	CarID      int64  `json:"car_id" binding:"required"`
	PickupDate string `json:"pickup_date" binding:"required"`
	ReturnDate string `json:"return_date" binding:"required"`
}

// AddCarRequest is the admin car definition
type AddCarRequest struct {
	Name         string  `json:"name" binding:"required"`
	Brand        string  `json:"brand" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	Year         int     `json:"year" binding:"required" validate:"gte=1900,lte=2100"`
	CarType      string  `json:"car_type" binding:"required"`
	Seats        int     `json:"seats" binding:"required" validate:"gt=0"`
	Transmission string  `json:"transmission" binding:"required"`
	FuelType     string  `json:"fuel_type" binding:"required"`
	PricePerDay  float64 `json:"price_per_day" binding:"required" validate:"gt=0"`
	LocationID   int64   `json:"location_id" binding:"required"`
	ImageURL     string  `json:"image_url"`
	Description  string  `json:"description"`
	Features     string  `json:"features"`
}

// updatableCarColumns are the columns PUT /admin/cars/:id may change
var updatableCarColumns = map[string]bool{
	"name": true, "brand": true, "model": true, "year": true, "car_type": true,
	"seats": true, "transmission": true, "fuel_type": true, "price_per_day": true,
	"location_id": true, "image_url": true, "description": true, "features": true,
	"available": true,
}

func carQuery(db *gorm.DB) *gorm.DB {
	return db.Table("cars").
		Select("cars.*, locations.name AS location_name, locations.city AS city, locations.address AS address").
		Joins("JOIN locations ON cars.location_id = locations.id")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return id, true
}

// validateDates checks a rental range and returns the message to reject it with
func (s *Server) validateDates(pickupDate, returnDate string) (string, bool) {
	pickup, err := time.Parse(dateLayout, pickupDate)
	if err != nil {
		return "Invalid date format. Use YYYY-MM-DD", false
	}
	ret, err := time.Parse(dateLayout, returnDate)
	if err != nil {
		return "Invalid date format. Use YYYY-MM-DD", false
	}
	if !pickup.Before(ret) {
		return "Return date must be after pickup date", false
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if pickup.Before(today) {
		return "Pickup date cannot be in the past", false
	}
	return "", true
}

// carAvailable reports whether no confirmed booking overlaps the range
func carAvailable(db *gorm.DB, carID int64, pickupDate, returnDate string) (bool, error) {
	var overlapping int64
	err := db.Model(&models.Booking{}).
		Where("car_id = ? AND status = ?", carID, models.BookingConfirmed).
		Where("((pickup_date <= ? AND return_date >= ?) OR (pickup_date <= ? AND return_date >= ?) OR (pickup_date >= ? AND return_date <= ?))",
			pickupDate, pickupDate, returnDate, returnDate, pickupDate, returnDate).
		Count(&overlapping).Error
	if err != nil {
		return false, err
	}
	return overlapping == 0, nil
}

// @Router /api/locations [get]
// @Success 200 {array} models.Location
func (s *Server) listLocations(c *gin.Context) {
	var locations []models.Location
	if err := s.db.Order("city").Find(&locations).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list locations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// @Router /api/cars [get]
// @Param location_id query int false "Location"
// @Param car_type query string false "Car type"
// @Param min_price query number false "Minimum daily price"
// @Param max_price query number false "Maximum daily price"
// @Success 200 {array} CarDetail
func (s *Server) listCars(c *gin.Context) {
	query := carQuery(s.db).Where("cars.available = ?", true)

	if raw := c.Query("location_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id != 0 {
			query = query.Where("cars.location_id = ?", id)
		}
	}
	if carType := c.Query("car_type"); carType != "" {
		query = query.Where("cars.car_type = ?", carType)
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			query = query.Where("cars.price_per_day >= ?", v)
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			query = query.Where("cars.price_per_day <= ?", v)
		}
	}

	cars := []CarDetail{}
	if err := query.Order("cars.price_per_day").Scan(&cars).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list cars")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, cars)
}

// @Router /api/cars/{id} [get]
// @Success 200 {object} CarDetail
// @Failure 404 {object} map[string]interface{}
func (s *Server) getCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var cars []CarDetail
	if err := carQuery(s.db).Where("cars.id = ?", id).Limit(1).Scan(&cars).Error; err != nil {
		s.logger.Error().Err(err).Int64("car_id", id).Msg("Failed to get car")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if len(cars) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}
	c.JSON(http.StatusOK, cars[0])
}

// @Router /api/cars/check-availability [post]
// @Param body body AvailabilityRequest true "Car and dates"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
func (s *Server) checkAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if msg, ok := s.validateDates(req.PickupDate, req.ReturnDate); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	available, err := carAvailable(s.db, req.CarID, req.PickupDate, req.ReturnDate)
	if err != nil {
		s.logger.Error().Err(err).Int64("car_id", req.CarID).Msg("Failed to check availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// @Router /api/admin/cars [post]
// @Param body body AddCarRequest true "Car definition"
// @Success 201 {object} map[string]interface{}
func (s *Server) addCar(c *gin.Context) {
	var req AddCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		s.logger.Warn().Err(err).Msg("Request validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	var location models.Location
	if err := models.FindByID(s.db, req.LocationID, &location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown location"})
		return
	}

	car := &models.Car{
		Name:         req.Name,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		CarType:      req.CarType,
		Seats:        req.Seats,
		Transmission: req.Transmission,
		FuelType:     req.FuelType,
		PricePerDay:  req.PricePerDay,
		LocationID:   req.LocationID,
		ImageURL:     req.ImageURL,
		Description:  req.Description,
		Features:     req.Features,
		Available:    true,
	}
	if err := s.db.Create(car).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to add car")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add car"})
		return
	}

	s.logger.Info().Int64("car_id", car.ID).Str("name", car.Name).Msg("Car added")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Car added successfully",
		"car_id":  car.ID,
	})
}

// @Router /api/admin/cars/{id} [put]
// @Success 200 {object} map[string]interface{}
func (s *Server) updateCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates := map[string]any{}
	for key, value := range fields {
		if key == "id" || value == nil {
			continue
		}
		if !updatableCarColumns[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown car field: " + key})
			return
		}
		updates[key] = value
	}
	if len(updates) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		return
	}

	var car models.Car
	if err := models.FindByID(s.db, id, &car); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
			return
		}
		s.logger.Error().Err(err).Int64("car_id", id).Msg("Failed to find car")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Model(&car).Updates(updates).Error; err != nil {
		s.logger.Error().Err(err).Int64("car_id", id).Msg("Failed to update car")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		return
	}

	s.logger.Info().Int64("car_id", id).Int("fields", len(updates)).Msg("Car updated")
	c.JSON(http.StatusOK, gin.H{"message": "Car updated successfully"})
}
