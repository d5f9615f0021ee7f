package models

// Salesperson 销售登记表，销售角色以是否在本表中登记为准
type Salesperson struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	OpenID string `json:"open_id" gorm:"size:64;not null;uniqueIndex"`
	Name   string `json:"name" gorm:"size:100"`
}

// TableName 设置表名
func (Salesperson) TableName() string {
	return "sales"
}
