package models

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StatusResponse answers GET /api/admin/status. Expiry fields are only
// present when the timestamped cookie is the credential being reported on.
type StatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	ExpiresIn     *int64 `json:"expiresIn,omitempty"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
}
