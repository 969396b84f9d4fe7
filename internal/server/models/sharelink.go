package models

import "time"

// ShareLink grants time-boxed, optionally password-gated public access to
// one file. Token is cryptographically random and URL-safe; PasswordHash is
// nil when no password was requested. Records are never mutated and persist
// past expiry so redemption can distinguish "expired" from "not found".
type ShareLink struct {
	Token        string
	FileID       string
	AccountID    string
	PasswordHash *string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// SharePublicInfo is the subset of link+file metadata safe to show on a
// public landing page.
type SharePublicInfo struct {
	Filename    string    `json:"filename"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadDate  time.Time `json:"upload_date"`
	IsProtected bool      `json:"is_protected"`
}
