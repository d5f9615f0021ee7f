package models

import (
	"database/sql/driver"
	"fmt"
)

// ActiveFlag 商品上下架标记
// 领域层是普通布尔值；历史库表以 "是"/"否" 字符串存储，转换只发生在存储边界
type ActiveFlag bool

// 查询与赋值用的具名常量
const (
	ActiveFlagYes = ActiveFlag(true)
	ActiveFlagNo  = ActiveFlag(false)
)

const (
	activeStoredYes = "是"
	activeStoredNo  = "否"
)

// Value 实现 driver.Valuer，落库为历史字符串格式
func (f ActiveFlag) Value() (driver.Value, error) {
	if f {
		return activeStoredYes, nil
	}
	return activeStoredNo, nil
}

// Scan 实现 sql.Scanner；仅 "是" 视为上架，NULL 与其余取值一律视为下架
func (f *ActiveFlag) Scan(value interface{}) error {
	if value == nil {
		*f = false
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*f = string(v) == activeStoredYes
	case string:
		*f = v == activeStoredYes
	default:
		return fmt.Errorf("无法将 %T 解析为 ActiveFlag", value)
	}
	return nil
}

// Product 镜架商品模型，主键为镜架型号
// 数据由批量导入维护，接口侧只读
type Product struct {
	FrameModel       string     `json:"frame_model" gorm:"primaryKey;size:100"`
	IsActive         ActiveFlag `json:"-" gorm:"type:varchar(10);not null;default:是"`
	LensSize         float64    `json:"lens_size" gorm:"not null"`               // 镜片大小(mm)
	NoseBridgeWidth  float64    `json:"nose_bridge_width" gorm:"not null"`       // 鼻梁宽度(mm)
	TempleLength     float64    `json:"temple_length" gorm:"not null"`           // 镜腿长度(mm)
	FrameTotalLength float64    `json:"frame_total_length" gorm:"not null"`      // 镜架总长(mm)
	FrameHeight      float64    `json:"frame_height" gorm:"not null"`            // 镜架高度(mm)
	FrameMaterial    string     `json:"frame_material" gorm:"size:100;not null"` // 材质，多标签以 + 连接，如 TR+B钛
	Weight           float64    `json:"weight" gorm:"not null"`                  // 重量(g)
	Price            float64    `json:"price" gorm:"not null"`                   // 售价(元)
	Brand            string     `json:"brand" gorm:"size:100"`
	FrameThickness   *float64   `json:"frame_thickness"` // 包边厚度(mm)
	Notes            string     `json:"notes" gorm:"size:500"`

	Image1  string `json:"-" gorm:"type:text"`
	Image2  string `json:"-" gorm:"type:text"`
	Image3  string `json:"-" gorm:"type:text"`
	Image4  string `json:"-" gorm:"type:text"`
	Image5  string `json:"-" gorm:"type:text"`
	Image6  string `json:"-" gorm:"type:text"`
	Image7  string `json:"-" gorm:"type:text"`
	Image8  string `json:"-" gorm:"type:text"`
	Image9  string `json:"-" gorm:"type:text"`
	Image10 string `json:"-" gorm:"type:text"`
	Image11 string `json:"-" gorm:"type:text"`
	Image12 string `json:"-" gorm:"type:text"`
	Image13 string `json:"-" gorm:"type:text"`
	Image14 string `json:"-" gorm:"type:text"`
	Image15 string `json:"-" gorm:"type:text"`
}

// TableName 设置表名
func (Product) TableName() string {
	return "products"
}

// Active 商品是否上架
func (p *Product) Active() bool {
	return p.IsActive == ActiveFlagYes
}

// Images 按序收集非空图片引用（存储值为相对路径或完整 URL）
func (p *Product) Images() []string {
	all := []string{
		p.Image1, p.Image2, p.Image3, p.Image4, p.Image5,
		p.Image6, p.Image7, p.Image8, p.Image9, p.Image10,
		p.Image11, p.Image12, p.Image13, p.Image14, p.Image15,
	}
	imgs := make([]string, 0, len(all))
	for _, img := range all {
		if img != "" {
			imgs = append(imgs, img)
		}
	}
	return imgs
}
