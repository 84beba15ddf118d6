package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentacar-dev/rentacar/internal/models"
)

// CreateBookingRequest represents a booking request
type CreateBookingRequest struct {
	CarID            int64    `json:"car_id" binding:"required"`
	PickupDate       string   `json:"pickup_date" binding:"required"`
	ReturnDate       string   `json:"return_date" binding:"required"`
	PickupLocationID int64    `json:"pickup_location_id" binding:"required"`
	ReturnLocationID int64    `json:"return_location_id" binding:"required"`
	TotalPrice       *float64 `json:"total_price" binding:"required" validate:"gte=0"`
}

// BookingDetail is a booking joined with its car, locations and customer
type BookingDetail struct {
	models.Booking
	CarName            string `json:"car_name"`
	Brand              string `json:"brand,omitempty"`
	Model              string `json:"model,omitempty"`
	ImageURL           string `json:"image_url,omitempty"`
	PickupLocationName string `json:"pickup_location_name,omitempty"`
	PickupCity         string `json:"pickup_city,omitempty"`
	ReturnLocationName string `json:"return_location_name,omitempty"`
	ReturnCity         string `json:"return_city,omitempty"`
	UserName           string `json:"user_name,omitempty"`
	UserEmail          string `json:"user_email,omitempty"`
}

// bookingQuery joins bookings with their car and locations, and with the
// customer when withCustomer is set
func bookingQuery(db *gorm.DB, withCustomer bool) *gorm.DB {
	columns := `bookings.*,
		cars.name AS car_name, cars.brand AS brand, cars.model AS model, cars.image_url AS image_url,
		pl.name AS pickup_location_name, pl.city AS pickup_city,
		rl.name AS return_location_name, rl.city AS return_city`
	if withCustomer {
		columns += ", users.full_name AS user_name, users.email AS user_email"
	}

	query := db.Table("bookings").
		Select(columns).
		Joins("JOIN cars ON bookings.car_id = cars.id").
		Joins("JOIN locations pl ON bookings.pickup_location_id = pl.id").
		Joins("JOIN locations rl ON bookings.return_location_id = rl.id")
	if withCustomer {
		query = query.Joins("JOIN users ON bookings.user_id = users.id")
	}
	return query.Order("bookings.created_at DESC, bookings.id DESC")
}

// @Router /api/bookings [post]
// @Param body body CreateBookingRequest true "Booking request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
func (s *Server) createBooking(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		s.logger.Warn().Err(err).Msg("Request validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	if msg, ok := s.validateDates(req.PickupDate, req.ReturnDate); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var car models.Car
	if err := models.FindByID(s.db, req.CarID, &car); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
			return
		}
		s.logger.Error().Err(err).Int64("car_id", req.CarID).Msg("Failed to find car")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var booking *models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		available, err := carAvailable(tx, req.CarID, req.PickupDate, req.ReturnDate)
		if err != nil {
			return err
		}
		if !available {
			return errCarUnavailable
		}

		booking = &models.Booking{
			UserID:           sessionData.UserID,
			CarID:            req.CarID,
			PickupDate:       req.PickupDate,
			ReturnDate:       req.ReturnDate,
			PickupLocationID: req.PickupLocationID,
			ReturnLocationID: req.ReturnLocationID,
			TotalPrice:       *req.TotalPrice,
			Status:           models.BookingConfirmed,
		}
		return tx.Create(booking).Error
	})
	if errors.Is(err, errCarUnavailable) {
		c.JSON(http.StatusConflict, gin.H{"error": "Car not available for selected dates"})
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("car_id", booking.CarID).
		Int64("user_id", booking.UserID).
		Msg("Booking created")

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking created successfully",
		"booking_id": booking.ID,
	})
}

var errCarUnavailable = errors.New("car not available")

// @Router /api/bookings [get]
// @Success 200 {array} BookingDetail
func (s *Server) listBookings(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	bookings := []BookingDetail{}
	if err := bookingQuery(s.db, false).Where("bookings.user_id = ?", sessionData.UserID).Scan(&bookings).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Router /api/bookings/{id} [delete]
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
func (s *Server) cancelBooking(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	result := s.db.Model(&models.Booking{}).
		Where("id = ? AND user_id = ?", id, sessionData.UserID).
		Update("status", models.BookingCancelled)
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Int64("booking_id", id).Msg("Failed to cancel booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found or unauthorized"})
		return
	}

	s.logger.Info().Int64("booking_id", id).Int64("user_id", sessionData.UserID).Msg("Booking cancelled")
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// @Router /api/admin/bookings [get]
// @Success 200 {array} BookingDetail
func (s *Server) listAllBookings(c *gin.Context) {
	bookings := []BookingDetail{}
	if err := bookingQuery(s.db, true).Scan(&bookings).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}
