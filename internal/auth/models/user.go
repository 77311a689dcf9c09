package models

// ============================================================
// User Model
// ============================================================

type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}
