package api

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"eyewear/database"
	"eyewear/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportSalesShares 导出分享记录为 Excel
// @Summary 导出分享记录
// @Description 按可选的销售与日期范围导出分享记录 xlsx
// @Tags 后台
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param salesperson_open_id query string false "按销售过滤"
// @Param start_date query string false "起始日期 YYYY-MM-DD"
// @Param end_date query string false "结束日期 YYYY-MM-DD"
// @Success 200 {file} binary "xlsx 文件"
// @Router /admin/export/sales_shares [get]
func (h *AdminHandler) ExportSalesShares(c *gin.Context) {
	query := database.DB.Model(&models.SalesShare{})
	if salesOpenID := strings.TrimSpace(c.Query("salesperson_open_id")); salesOpenID != "" {
		query = query.Where("salesperson_open_id = ?", salesOpenID)
	}
	startDate := strings.TrimSpace(c.Query("start_date"))
	endDate := strings.TrimSpace(c.Query("end_date"))
	if startDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", startDate, time.Local); err == nil {
			query = query.Where("push_time >= ?", t)
		}
	}
	if endDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", endDate, time.Local); err == nil {
			query = query.Where("push_time < ?", t.AddDate(0, 0, 1))
		}
	}

	var shares []models.SalesShare
	if err := query.Order("push_time DESC").Find(&shares).Error; err != nil {
		HandleError(c, err, "Error exporting sales shares")
		return
	}

	// 销售姓名映射
	var sales []models.Salesperson
	database.DB.Find(&sales)
	salesNames := make(map[string]string, len(sales))
	for _, s := range sales {
		salesNames[s.OpenID] = s.Name
	}

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "分享记录"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "C", 40)
	f.SetColWidth(sheetName, "D", "D", 20)
	f.SetColWidth(sheetName, "E", "E", 20)
	f.SetColWidth(sheetName, "F", "F", 10)
	f.SetColWidth(sheetName, "G", "G", 10)
	f.SetColWidth(sheetName, "H", "H", 20)

	// 写入表头
	headers := []string{"ID", "销售", "分享商品", "备注", "推送时间", "打开人数", "发送次数", "最近打开时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	for i, share := range shares {
		row := i + 2
		name := salesNames[share.SalespersonOpenID]
		if name == "" {
			name = share.SalespersonOpenID
		}
		lastOpen := ""
		if share.LastOpenTime != nil {
			lastOpen = share.LastOpenTime.Format("2006-01-02 15:04:05")
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), share.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), strings.Join(share.ProductList, "，"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), share.Note)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), share.PushTime.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), share.OpenCount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), share.SentCount)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), lastOpen)

		// 设置数据样式
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), dataStyle)
	}

	// 设置响应头
	filename := fmt.Sprintf("分享记录_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))

	// 写入响应
	if err := f.Write(c.Writer); err != nil {
		HandleError(c, err, "Error writing excel file")
		return
	}
}
