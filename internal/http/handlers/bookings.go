package handlers

import (
	"net/http"

	"traintrek/internal/domain"
	"traintrek/internal/domain/models"
	"traintrek/internal/http/middleware"
	"traintrek/internal/services"

	"github.com/gin-gonic/gin"
)

type bookingIDPayload struct {
	BookingID int64 `json:"bookingId"`
}

// CreateBooking allocates a booking on a train and returns the joined view.
func CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// LuckyConfirm flips the coin for a RAC or WL booking.
func LuckyConfirm(c *gin.Context) {
	var req bookingIDPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UpgradeService{RequestID: middleware.GetRequestID(c)}
	result, err := svc.LuckyConfirm(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CancelBooking cancels a booking and triggers the upgrade chain.
func CancelBooking(c *gin.Context) {
	var req bookingIDPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UpgradeService{RequestID: middleware.GetRequestID(c)}
	result, err := svc.Cancel(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookings lists all bookings joined with their trains.
func GetBookings(c *gin.Context) {
	bookings, err := services.HistoryService{}.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func GetBookingByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	booking, err := services.HistoryService{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBookingHistory looks up bookings by stored email or phone.
func GetBookingHistory(c *gin.Context) {
	bookings, err := services.HistoryService{}.ByContact(c.Query("email"), c.Query("phone"))
	if err != nil {
		status := http.StatusInternalServerError
		if domain.IsValidation(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GetUpgradeHistory returns a booking's upgrade trail, newest first.
func GetUpgradeHistory(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	entries, err := services.HistoryService{}.UpgradeTrail(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "upgradeHistory": entries})
}

// GetBookingETicket streams the e-ticket PDF for a booking.
func GetBookingETicket(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
