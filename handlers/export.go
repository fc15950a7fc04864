package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/qms/models"
	"p9e.in/qms/repository"
)

var poRegisterHeaders = []string{
	"PO Number", "Order Date", "Deliver Date", "Supplier", "Material",
	"Quantity", "Rate/Qty", "Rate/KG", "HSN/SAC", "GST %", "Tax Amount",
	"Status", "Stage", "Manager Remarks", "Created At",
}

func poRegisterRow(po models.PurchaseOrder) []string {
	taxAmount := ""
	if po.TaxAmount != nil {
		taxAmount = *po.TaxAmount
	}
	managerRemarks := ""
	if po.ManagerRemarks != nil {
		managerRemarks = *po.ManagerRemarks
	}
	return []string{
		po.PONumber, po.OrderDate, po.DeliverDate, po.SupplierName, po.Material,
		po.Quantity, po.RatePerQuantity, po.RatePerKG, po.HSNSACCode, po.GST, taxAmount,
		string(po.Status), string(po.WorkflowStage), managerRemarks,
		po.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ExportPurchaseOrdersToExcel downloads the full PO register as a
// styled xlsx workbook.
func ExportPurchaseOrdersToExcel(w http.ResponseWriter, r *http.Request) {
	orders, err := lifecycleService().ListAll()
	orders = repository.FailSoft("export purchase orders", orders, err)

	f, err := createPORegisterWorkbook(orders)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("purchase_orders_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportPurchaseOrdersToCSV downloads the full PO register as CSV.
func ExportPurchaseOrdersToCSV(w http.ResponseWriter, r *http.Request) {
	orders, err := lifecycleService().ListAll()
	orders = repository.FailSoft("export purchase orders", orders, err)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write(poRegisterHeaders)
	for _, po := range orders {
		writer.Write(poRegisterRow(po))
	}
	writer.Flush()
	if writer.Error() != nil {
		http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("purchase_orders_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func createPORegisterWorkbook(orders []models.PurchaseOrder) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Purchase Orders"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", "Purchase Order Register")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for colIdx, header := range poRegisterHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		letter := columnIndexToLetter(colIdx + 1)
		f.SetColWidth(sheetName, letter, letter, 18)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	for rowIdx, po := range orders {
		for colIdx, value := range poRegisterRow(po) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
