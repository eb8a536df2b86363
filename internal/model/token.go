package model

// TokenManager issues and verifies signed session tokens.
type TokenManager interface {
	Issue(userID int64, username string) (string, error)
	Verify(tokenString string) (*DecodedToken, error)
}

// DecodedToken carries the claims of a verified session token.
type DecodedToken struct {
	Claims map[string]any
}
