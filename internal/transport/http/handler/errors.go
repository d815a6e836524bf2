package handler

// User-facing messages. Registration copy is Indonesian to match the
// DBFPN frontend; the profile and token messages mirror the API copy the
// frontend already expects.
const (
	errInternalServer        = "Terjadi kesalahan. Silakan coba lagi."
	errInvalidEmail          = "Format email tidak valid"
	errAlreadyRegistered     = "Email sudah terdaftar. Silakan masuk."
	errNoPendingRegistration = "Tidak ada pendaftaran yang tertunda untuk email ini."
	errOTPExpired            = "Kode OTP sudah kadaluarsa. Silakan daftar ulang."
	errOTPInvalid            = "Kode OTP tidak valid."
	errTooManyAttempts       = "Terlalu banyak percobaan gagal. Silakan daftar ulang."
	errUserNotFound          = "User tidak ditemukan"
	errUsernameTaken         = "Username already taken"
	errTokenInvalid          = "Token is invalid or expired"
)
