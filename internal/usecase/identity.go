package usecase

// Identity is the resolved caller supplied by the HTTP layer.
type Identity struct {
	UserID  string
	Email   string
	Name    string
	IsAdmin bool
}
