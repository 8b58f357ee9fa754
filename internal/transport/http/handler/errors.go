package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid credentials"
	errEmailTaken         = "Email already registered"
	errWeakPassword       = "Password must be at least 8 characters and include a digit and an uppercase letter"
	errUserNotFound       = "User not found"
)
