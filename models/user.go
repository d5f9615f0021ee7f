package models

import "time"

// User 小程序用户模型，主键为微信 open_id
// ReferrerOpenID / MySalesOpenID 均为只允许设置一次的指针字段：
// 空表示未设置；设置后同值幂等、异值拒绝覆盖
type User struct {
	OpenID         string    `json:"open_id" gorm:"primaryKey;size:64"`
	Nickname       string    `json:"nickname" gorm:"size:100"`
	AvatarURL      string    `json:"avatar_url" gorm:"size:500"`
	ReferrerOpenID string    `json:"referrer_open_id" gorm:"size:64;index"` // 介绍人 open_id
	MySalesOpenID  string    `json:"my_sales_open_id" gorm:"size:64"`       // 所属销售 open_id
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
