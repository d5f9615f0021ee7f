package models

import "time"

// Favorite 推荐（收藏）条目，(open_id, frame_model) 全局唯一
// 同一次推荐操作产生的条目共享 BatchID/BatchTime；历史数据两者为空，归入 legacy 分组
type Favorite struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	OpenID     string     `json:"open_id" gorm:"size:64;not null;uniqueIndex:uk_favorites_open_model"`
	FrameModel string     `json:"frame_model" gorm:"size:100;not null;uniqueIndex:uk_favorites_open_model"`
	BatchID    *int64     `json:"batch_id"`
	BatchTime  *time.Time `json:"batch_time"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName 设置表名
func (Favorite) TableName() string {
	return "favorites"
}
