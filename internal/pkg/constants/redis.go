package constants

// Redis key formats
const (
	KeyOTPAttempts = "otp:attempts:%s" // Format: otp:attempts:{transaction_id}
	KeySweepLease  = "sweep:lease:%s"  // Format: sweep:lease:{sweep_name}
	KeyRateLimit   = "rate:user"
)
