package auth

import "errors"

// User-facing messages stay in Uzbek, matching the storefront UI copy.
var (
	ErrInvalidCredentials = errors.New("noto'g'ri login yoki parol")
	ErrUsernameTaken      = errors.New("bu foydalanuvchi nomi allaqachon mavjud")
	ErrEmailTaken         = errors.New("bu email allaqachon ro'yxatdan o'tgan")
)
