package usecases

import "time"

// OTPValidity is how long any emailed code stays valid
const OTPValidity = 10 * time.Minute

// Throttle purposes
const (
	otpPurposeVerify = "verify"
	otpPurposeReset  = "reset"
)
