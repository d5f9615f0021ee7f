package models

import "time"

// SalesShare 销售分享推送记录
// ProductList 创建时一次性写入；CustomerOpenIDs 为去重后的打开者集合，只增不减，
// OpenCount 恒等于其长度。发送侧 SentCount 每次 mark_sent 都递增（近似统计发送尝试）
type SalesShare struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	SalespersonOpenID string     `json:"salesperson_open_id" gorm:"size:64;not null;index"`
	ProductList       StringList `json:"product_list" gorm:"type:text"`
	Note              string     `json:"note" gorm:"size:64"`
	DedupKey          *string    `json:"dedup_key" gorm:"size:128;uniqueIndex"` // 幂等键，NULL 不参与唯一约束
	PushTime          time.Time  `json:"push_time"`
	CustomerOpenIDs   StringList `json:"customer_open_ids" gorm:"type:text"`
	OpenCount         int        `json:"open_count" gorm:"not null;default:0"`
	IsOpened          bool       `json:"is_opened" gorm:"not null;default:false"`
	FirstOpenTime     *time.Time `json:"first_open_time"`
	LastOpenTime      *time.Time `json:"last_open_time"`
	IsSent            bool       `json:"is_sent" gorm:"not null;default:false;index"`
	SentCount         int        `json:"sent_count" gorm:"not null;default:0"`
	LastSentTime      *time.Time `json:"last_sent_time"`
}

// TableName 设置表名
func (SalesShare) TableName() string {
	return "sales_shares"
}
