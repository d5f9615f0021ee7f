package service

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// 商品搜索字段表：把白名单字段名静态映射到一种匹配方式，
// 避免在编译逻辑里散落字段名字符串，也杜绝未知字段被悄悄忽略的歧义。

// FieldKind 过滤字段的匹配方式
type FieldKind int

const (
	// FieldExact 字符串精确相等
	FieldExact FieldKind = iota
	// FieldNumeric 数值或 lo-hi 范围匹配，带对称容差
	FieldNumeric
	// FieldTagSet 按 + 分隔的材质标签集合匹配（任一标签命中）
	FieldTagSet
	// FieldSubstring 子串包含匹配，可配置目标列与大小写敏感性
	FieldSubstring
)

// FieldSpec 单个可过滤字段的匹配规则
type FieldSpec struct {
	Kind       FieldKind
	Columns    []string // 匹配的目标列；空则取字段名本身
	IgnoreCase bool     // 仅对 FieldSubstring 有效
}

// productFieldSpecs 所有已知的可过滤字段
// 白名单（config.Search.AllowedFields）从中选取子集；出现在白名单
// 却不在本表中的名字在编译时被跳过
var productFieldSpecs = map[string]FieldSpec{
	"frame_model":        {Kind: FieldSubstring, Columns: []string{"frame_model"}, IgnoreCase: true},
	"lens_size":          {Kind: FieldNumeric},
	"nose_bridge_width":  {Kind: FieldNumeric},
	"temple_length":      {Kind: FieldNumeric},
	"frame_total_length": {Kind: FieldNumeric},
	"frame_height":       {Kind: FieldNumeric},
	"weight":             {Kind: FieldNumeric},
	"price":              {Kind: FieldNumeric},
	"frame_material":     {Kind: FieldTagSet, Columns: []string{"frame_material"}},
	"other_info":         {Kind: FieldSubstring, Columns: []string{"brand", "notes"}},
	"brand_info":         {Kind: FieldSubstring, Columns: []string{"brand"}},
	"brand":              {Kind: FieldExact},
	"notes":              {Kind: FieldExact},
}

// numericEpsilon 数值比较的对称容差，吸收浮点入库误差
const numericEpsilon = 1e-4

// Condition 一条 SQL 过滤条件
type Condition struct {
	Query string
	Args  []interface{}
}

// ProductFilter 编译后的商品过滤谓词（各条件 AND 组合）
// alwaysFalse 表示整个查询约定为空结果（非法数值输入的 fail-closed 策略）
type ProductFilter struct {
	conds       []Condition
	alwaysFalse bool
}

// AlwaysFalse 是否为恒空谓词
func (f *ProductFilter) AlwaysFalse() bool {
	return f.alwaysFalse
}

// Conditions 返回编译出的条件列表
func (f *ProductFilter) Conditions() []Condition {
	return f.conds
}

// Apply 把谓词叠加到查询上
func (f *ProductFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.alwaysFalse {
		return db.Where("1 = 0")
	}
	for _, c := range f.conds {
		db = db.Where(c.Query, c.Args...)
	}
	return db
}

// CompileProductFilter 把查询参数编译为商品过滤谓词
//
// values: 原始查询参数（字段名 -> 原始字符串）
// allowedFields: 字段白名单；defaultField: 旧版单字段搜索的兜底字段
//
// 两种模式二选一：白名单字段中任一有值则走多字段 AND 模式；
// 否则若 search_value 非空，走旧版 search_field/search_value 单字段模式。
func CompileProductFilter(values map[string]string, allowedFields []string, defaultField string) *ProductFilter {
	f := &ProductFilter{}

	multi := map[string]string{}
	for _, name := range allowedFields {
		if v, ok := values[name]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				multi[name] = trimmed
			}
		}
	}

	if len(multi) > 0 {
		// 多字段并行过滤（AND）；按白名单顺序编译，保证条件顺序稳定
		for _, name := range allowedFields {
			v, ok := multi[name]
			if !ok {
				continue
			}
			f.compileField(name, v)
		}
		return f
	}

	// 兼容旧的单字段搜索参数
	searchValue := strings.TrimSpace(values["search_value"])
	if searchValue == "" {
		return f
	}
	searchField := strings.TrimSpace(values["search_field"])
	if searchField == "" || !containsString(allowedFields, searchField) {
		searchField = defaultField
	}
	f.compileField(searchField, searchValue)
	return f
}

// compileField 编译单个字段；未知字段静默跳过
func (f *ProductFilter) compileField(name, value string) {
	spec, ok := productFieldSpecs[name]
	if !ok {
		return
	}
	cols := spec.Columns
	if len(cols) == 0 {
		cols = []string{name}
	}

	switch spec.Kind {
	case FieldSubstring:
		needle := value
		if spec.IgnoreCase {
			needle = strings.ToLower(needle)
		}
		like := "%" + escapeLike(needle) + "%"
		exprs := make([]string, 0, len(cols))
		args := make([]interface{}, 0, len(cols))
		for _, col := range cols {
			if spec.IgnoreCase {
				exprs = append(exprs, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			} else {
				exprs = append(exprs, fmt.Sprintf("%s LIKE ?", col))
			}
			args = append(args, like)
		}
		f.conds = append(f.conds, Condition{
			Query: "(" + strings.Join(exprs, " OR ") + ")",
			Args:  args,
		})
	case FieldTagSet:
		if cond, ok := materialAnyOf(cols[0], SplitMaterialTags(value)); ok {
			f.conds = append(f.conds, cond)
		}
	case FieldNumeric:
		lo, hi, err := ParseRangeOrNumber(value)
		if err != nil {
			// 非法数值：整体结果约定为空，而不是忽略这一个条件
			f.alwaysFalse = true
			return
		}
		f.conds = append(f.conds, Condition{
			Query: fmt.Sprintf("%s BETWEEN ? AND ?", cols[0]),
			Args:  []interface{}{lo - numericEpsilon, hi + numericEpsilon},
		})
	case FieldExact:
		f.conds = append(f.conds, Condition{
			Query: fmt.Sprintf("%s = ?", cols[0]),
			Args:  []interface{}{value},
		})
	}
}

// ParseRangeOrNumber 解析数值或范围字符串
//   - 单值: "42" -> (42, 42)
//   - 范围: "40-45" / "40 - 45" -> (40, 45)，lo>hi 时交换
//
// 范围分隔符兼容 ASCII 连字符与全角破折号（－ — –）
func ParseRangeOrNumber(s string) (lo, hi float64, err error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, 0, fmt.Errorf("空数值")
	}
	replacer := strings.NewReplacer("－", "-", "—", "-", "–", "-")
	text = replacer.Replace(text)

	if i := strings.Index(text, "-"); i >= 0 {
		left := strings.TrimSpace(text[:i])
		right := strings.TrimSpace(text[i+1:])
		if left == "" || right == "" {
			return 0, 0, fmt.Errorf("非法范围: %q", s)
		}
		lo, err = strconv.ParseFloat(left, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("非法范围下界: %q", s)
		}
		hi, err = strconv.ParseFloat(right, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("非法范围上界: %q", s)
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi, nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("非法数值: %q", s)
	}
	return v, v, nil
}

// SplitMaterialTags 把材质输入拆分为标签集合
// 分隔符支持半角逗号、全角逗号、竖线；空白与空标签被丢弃
func SplitMaterialTags(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || r == '|'
	})
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// materialAnyOf 构造材质标签匹配条件
// 存储格式形如 "TR+钛"、"TR+B钛"，按 + 分隔为精确标签。
// 单标签匹配整列、列首、列尾或列中的完整 token，避免“钛”误命中“B钛”：
//
//	col = tag OR col LIKE 'tag+%' OR col LIKE '%+tag' OR col LIKE '%+tag+%'
//
// 多标签之间 OR（任一命中即可）
func materialAnyOf(col string, tags []string) (Condition, bool) {
	if len(tags) == 0 {
		return Condition{}, false
	}
	single := fmt.Sprintf("(%s = ? OR %s LIKE ? OR %s LIKE ? OR %s LIKE ?)", col, col, col, col)
	exprs := make([]string, 0, len(tags))
	args := make([]interface{}, 0, len(tags)*4)
	for _, tag := range tags {
		esc := escapeLike(tag)
		exprs = append(exprs, single)
		args = append(args, tag, esc+"+%", "%+"+esc, "%+"+esc+"+%")
	}
	return Condition{
		Query: "(" + strings.Join(exprs, " OR ") + ")",
		Args:  args,
	}, true
}

// escapeLike 转义 LIKE 模式中的通配符，防止用户输入改变匹配语义
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
