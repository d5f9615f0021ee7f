package models

import "time"

// PageView 页面访问记录（非权威诊断数据，仅供后台查看）
type PageView struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OpenID    string    `json:"open_id" gorm:"size:64;not null;index"`
	Page      string    `json:"page" gorm:"size:255;not null"`
	Referer   string    `json:"referer" gorm:"size:500"`
	UserAgent string    `json:"user_agent" gorm:"size:500"`
	IP        string    `json:"ip" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (PageView) TableName() string {
	return "page_views"
}
