package db

import "time"

// StatusCheck records a client ping against the backend.
type StatusCheck struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ClientName string    `gorm:"size:100;not null" json:"client_name"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

// TableName 返回自定义表名
func (StatusCheck) TableName() string {
	return "status_checks"
}
