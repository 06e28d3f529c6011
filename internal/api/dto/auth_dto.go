package dto

// LoginRequest carries submitted credentials.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse is the issued-token envelope.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	UserID      string   `json:"user_id"`
	Role        string   `json:"role"`
	Scopes      []string `json:"scopes"`
	TokenType   string   `json:"token_type"`
}
