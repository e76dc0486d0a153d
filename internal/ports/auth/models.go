package auth

// Claims identifica al usuario autenticado del request.
type Claims struct {
	UserID string
	Email  string
}
