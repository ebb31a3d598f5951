package auth

// TokenResponse is the body of a successful POST /login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserInfoResponse is the body of GET /info.
type UserInfoResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Picture  string `json:"picture"`
}
