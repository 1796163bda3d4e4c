package db

import "time"

const (
	// WaitlistStatusPending 新加入的候补记录状态
	WaitlistStatusPending = "pending"
	// WaitlistSourceLandingPage 记录来源：落地页表单
	WaitlistSourceLandingPage = "landing_page"
)

// WaitlistEntry 保存访客提交的候补名单记录。
// ID 使用 UUID 字符串，Email 统一小写并建立唯一索引。
type WaitlistEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	City      string    `gorm:"size:50;not null" json:"city"`
	Status    string    `gorm:"size:20;not null;default:pending" json:"status"`
	Source    string    `gorm:"size:40;not null;default:landing_page" json:"source"`
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
	UpdatedAt time.Time `json:"-"`
}

// TableName 返回自定义表名
func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
