package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList 以 JSON 数组文本落库的字符串列表
// 领域层只当普通切片使用，序列化是存储层的事
type StringList []string

// Value 实现 driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner，容忍 NULL 与历史脏数据
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("无法将 %T 解析为 StringList", value)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		// 历史数据可能不是合法 JSON 数组，按空列表处理而不是让整行读取失败
		*l = StringList{}
		return nil
	}
	*l = out
	return nil
}

// Contains 精确成员判断
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
