// Package model 定义餐饮排班系统的核心数据模型
package model

// Store 店铺
type Store struct {
	BaseModel
	Name               string `json:"name" db:"name"`
	OpeningTime        string `json:"opening_time" db:"opening_time"` // HH:MM
	ClosingTime        string `json:"closing_time" db:"closing_time"` // HH:MM
	PreparationMinutes int    `json:"preparation_minutes" db:"preparation_minutes"`
	CleanupMinutes     int    `json:"cleanup_minutes" db:"cleanup_minutes"`
}

// Account 登录账号
type Account struct {
	BaseModel
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	FullName     string `json:"full_name" db:"full_name"`
}
