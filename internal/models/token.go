package models

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// PublicUser is the user projection embedded in the login response.
type PublicUser struct {
	Email    string  `json:"email"`
	Username *string `json:"username"`
}

// LoginResult is the login response body.
type LoginResult struct {
	Refresh string     `json:"refresh"`
	Access  string     `json:"access"`
	User    PublicUser `json:"user"`
}
