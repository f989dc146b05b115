package handlers

import (
	"matehub/services/booking"
	"matehub/services/mate"
	"matehub/services/user"

	"go.uber.org/zap"
)

// HandlerBundle groups the endpoint handlers the router mounts.
type HandlerBundle struct {
	Booking *BookingHandler
	Mate    *MateHandler
	Auth    *AuthHandler
}

// NewHandlerBundle wires handlers over the booking, mate and sign-in services.
func NewHandlerBundle(bookingService booking.BookingService, mateService mate.MateService, userService user.UserService, logger *zap.Logger) *HandlerBundle {
	return &HandlerBundle{
		Booking: &BookingHandler{Service: bookingService, Logger: logger},
		Mate:    &MateHandler{Service: mateService, Logger: logger},
		Auth:    &AuthHandler{Service: userService, Logger: logger},
	}
}
