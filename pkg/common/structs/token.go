package structs

// Token is the response payload of a successful credential exchange.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Name        string `json:"name"`
}
