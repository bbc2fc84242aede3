package models

type RefreshToken struct {
	Token  string
	UserID string
}
