package repository

import (
	bookingRepo "matehub/database/repository/booking"
	userRepo "matehub/database/repository/user"
)

// Re-export the profile repositories and constructor.
type MateRepository = userRepo.MateRepository

type RenterRepository = userRepo.RenterRepository

type CredentialRepository = userRepo.CredentialRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo

// Re-export the booking repositories and constructor.
type HoldRepository = bookingRepo.HoldRepository

type TransactionRepository = bookingRepo.TransactionRepository

type ReviewRepository = bookingRepo.ReviewRepository

type TransactionFilter = bookingRepo.TransactionFilter

type BookingRepoOptions = bookingRepo.Options

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// ErrStatusChanged reports a lost conditional status update.
var ErrStatusChanged = bookingRepo.ErrStatusChanged

// ErrHoldClaimed reports a promotion that lost the race for its hold.
var ErrHoldClaimed = bookingRepo.ErrHoldClaimed
