package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog-sync-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary   = "Summary"
	sheetDetail    = "Detail"
	sheetAnalytics = "Analytics"
	sheetCustomers = "Customers"

	currencyFormat = "#,##0.00"

	datedArtifactPrefix = "sales_report_"
	masterArtifactName  = "sales_report_master.xlsx"

	trailingWindowDays = 30
)

// statusFills colors Summary rows by order status. Coloring is cosmetic
// only; cell values are written before styling and never altered by it.
var statusFills = map[models.OrderStatus]string{
	models.OrderStatusPlaced:     "FFF2CC",
	models.OrderStatusConfirmed:  "DDEBF7",
	models.OrderStatusProcessing: "DDEBF7",
	models.OrderStatusShipped:    "E2EFDA",
	models.OrderStatusDelivered:  "C6EFCE",
	models.OrderStatusCancelled:  "FFC7CE",
}

// BuildWorkbook renders the four-sheet report workbook from the order log
// and its aggregates.
func BuildWorkbook(orders []models.OrderRecord, agg *Aggregates, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetSummary)
	f.NewSheet(sheetDetail)
	f.NewSheet(sheetAnalytics)
	f.NewSheet(sheetCustomers)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	currencyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
	wrapStyle, _ := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})

	if err := writeSummary(f, orders, headerStyle, currencyStyle); err != nil {
		return nil, err
	}
	if err := writeDetail(f, orders, headerStyle, currencyStyle, wrapStyle); err != nil {
		return nil, err
	}
	if err := writeAnalytics(f, agg, now, headerStyle, currencyStyle); err != nil {
		return nil, err
	}
	if err := writeCustomers(f, agg, headerStyle, currencyStyle); err != nil {
		return nil, err
	}

	idx, _ := f.GetSheetIndex(sheetSummary)
	f.SetActiveSheet(idx)
	return f, nil
}

func writeSummary(f *excelize.File, orders []models.OrderRecord, headerStyle, currencyStyle int) error {
	headers := []string{"Order #", "Date", "Customer", "Email", "Region", "Status", "Total"}
	if err := writeHeaderRow(f, sheetSummary, headers, headerStyle); err != nil {
		return err
	}

	statusStyles := make(map[models.OrderStatus]int)
	for status, color := range statusFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create status style: %w", err)
		}
		statusStyles[status] = style
	}

	for i, order := range orders {
		row := i + 2
		f.SetCellValue(sheetSummary, cell("A", row), order.OrderNumber)
		f.SetCellValue(sheetSummary, cell("B", row), order.CreatedAt.Format(dateLayout))
		f.SetCellValue(sheetSummary, cell("C", row), order.CustomerName)
		f.SetCellValue(sheetSummary, cell("D", row), order.CustomerEmail)
		f.SetCellValue(sheetSummary, cell("E", row), order.ShippingRegion)
		f.SetCellValue(sheetSummary, cell("F", row), string(order.Status))
		f.SetCellValue(sheetSummary, cell("G", row), order.Total)

		if style, ok := statusStyles[order.Status]; ok {
			f.SetCellStyle(sheetSummary, cell("A", row), cell("F", row), style)
		}
		f.SetCellStyle(sheetSummary, cell("G", row), cell("G", row), currencyStyle)
	}

	f.SetColWidth(sheetSummary, "A", "A", 14)
	f.SetColWidth(sheetSummary, "B", "B", 12)
	f.SetColWidth(sheetSummary, "C", "D", 24)
	f.SetColWidth(sheetSummary, "E", "F", 14)
	f.SetColWidth(sheetSummary, "G", "G", 12)
	return nil
}

func writeDetail(f *excelize.File, orders []models.OrderRecord, headerStyle, currencyStyle, wrapStyle int) error {
	headers := []string{"Order #", "Date", "Items", "Shipping Address", "Total"}
	if err := writeHeaderRow(f, sheetDetail, headers, headerStyle); err != nil {
		return err
	}

	for i, order := range orders {
		row := i + 2
		lines := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, fmt.Sprintf("%s x%d @ %.2f", item.Name, item.Quantity, item.Price))
		}
		address := order.ShippingAddress
		if order.ShippingCity != "" || order.ShippingRegion != "" {
			address = strings.TrimSpace(address + "\n" + order.ShippingCity + ", " + order.ShippingRegion)
		}

		f.SetCellValue(sheetDetail, cell("A", row), order.OrderNumber)
		f.SetCellValue(sheetDetail, cell("B", row), order.CreatedAt.Format(dateLayout))
		f.SetCellValue(sheetDetail, cell("C", row), strings.Join(lines, "\n"))
		f.SetCellValue(sheetDetail, cell("D", row), address)
		f.SetCellValue(sheetDetail, cell("E", row), order.Total)

		f.SetCellStyle(sheetDetail, cell("C", row), cell("D", row), wrapStyle)
		f.SetCellStyle(sheetDetail, cell("E", row), cell("E", row), currencyStyle)
	}

	f.SetColWidth(sheetDetail, "A", "A", 14)
	f.SetColWidth(sheetDetail, "B", "B", 12)
	f.SetColWidth(sheetDetail, "C", "C", 48)
	f.SetColWidth(sheetDetail, "D", "D", 40)
	f.SetColWidth(sheetDetail, "E", "E", 12)
	return nil
}

func writeAnalytics(f *excelize.File, agg *Aggregates, now time.Time, headerStyle, currencyStyle int) error {
	f.SetCellValue(sheetAnalytics, "A1", fmt.Sprintf("Daily (trailing %d days)", trailingWindowDays))
	if err := writeHeaderRowAt(f, sheetAnalytics, 2, []string{"Date", "Orders", "Revenue"}, headerStyle); err != nil {
		return err
	}
	row := 3
	for _, d := range agg.TrailingDaily(now, trailingWindowDays) {
		f.SetCellValue(sheetAnalytics, cell("A", row), d.Date)
		f.SetCellValue(sheetAnalytics, cell("B", row), d.Count)
		f.SetCellValue(sheetAnalytics, cell("C", row), d.Revenue)
		f.SetCellStyle(sheetAnalytics, cell("C", row), cell("C", row), currencyStyle)
		row++
	}

	row += 2
	f.SetCellValue(sheetAnalytics, cell("A", row), "By status")
	row++
	if err := writeHeaderRowAt(f, sheetAnalytics, row, []string{"Status", "Orders", "Revenue"}, headerStyle); err != nil {
		return err
	}
	row++
	for _, s := range agg.ByStatus {
		f.SetCellValue(sheetAnalytics, cell("A", row), s.Key)
		f.SetCellValue(sheetAnalytics, cell("B", row), s.Count)
		f.SetCellValue(sheetAnalytics, cell("C", row), s.Revenue)
		f.SetCellStyle(sheetAnalytics, cell("C", row), cell("C", row), currencyStyle)
		row++
	}

	row += 2
	f.SetCellValue(sheetAnalytics, cell("A", row), "By region")
	row++
	if err := writeHeaderRowAt(f, sheetAnalytics, row, []string{"Region", "Orders", "Revenue"}, headerStyle); err != nil {
		return err
	}
	row++
	for _, r := range agg.ByRegion {
		f.SetCellValue(sheetAnalytics, cell("A", row), r.Key)
		f.SetCellValue(sheetAnalytics, cell("B", row), r.Count)
		f.SetCellValue(sheetAnalytics, cell("C", row), r.Revenue)
		f.SetCellStyle(sheetAnalytics, cell("C", row), cell("C", row), currencyStyle)
		row++
	}

	f.SetColWidth(sheetAnalytics, "A", "A", 18)
	f.SetColWidth(sheetAnalytics, "B", "C", 12)
	return nil
}

func writeCustomers(f *excelize.File, agg *Aggregates, headerStyle, currencyStyle int) error {
	headers := []string{"Rank", "Customer", "Email", "Orders", "Total Spend", "Avg Order", "Last Order"}
	if err := writeHeaderRow(f, sheetCustomers, headers, headerStyle); err != nil {
		return err
	}

	for i, c := range agg.Customers {
		row := i + 2
		f.SetCellValue(sheetCustomers, cell("A", row), i+1)
		f.SetCellValue(sheetCustomers, cell("B", row), c.Name)
		f.SetCellValue(sheetCustomers, cell("C", row), c.Email)
		f.SetCellValue(sheetCustomers, cell("D", row), c.Orders)
		f.SetCellValue(sheetCustomers, cell("E", row), c.TotalSpend)
		f.SetCellValue(sheetCustomers, cell("F", row), c.AvgOrderValue)
		f.SetCellValue(sheetCustomers, cell("G", row), c.LastOrderAt.Format(dateLayout))
		f.SetCellStyle(sheetCustomers, cell("E", row), cell("F", row), currencyStyle)
	}

	f.SetColWidth(sheetCustomers, "A", "A", 6)
	f.SetColWidth(sheetCustomers, "B", "C", 24)
	f.SetColWidth(sheetCustomers, "D", "G", 14)
	return nil
}

// WriteReport builds the workbook once and writes both artifacts: the dated
// per-run file and the continuously overwritten master.
func WriteReport(dir string, orders []models.OrderRecord, agg *Aggregates, now time.Time) (string, string, error) {
	f, err := BuildWorkbook(orders, agg, now)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create report directory: %w", err)
	}

	dated := filepath.Join(dir, datedArtifactPrefix+now.Format(dateLayout)+".xlsx")
	if err := f.SaveAs(dated); err != nil {
		return "", "", fmt.Errorf("failed to write dated report: %w", err)
	}
	master := filepath.Join(dir, masterArtifactName)
	if err := f.SaveAs(master); err != nil {
		return "", "", fmt.Errorf("failed to write master report: %w", err)
	}
	return dated, master, nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	return writeHeaderRowAt(f, sheet, 1, headers, style)
}

func writeHeaderRowAt(f *excelize.File, sheet string, row int, headers []string, style int) error {
	for i, h := range headers {
		name, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, name, h)
		f.SetCellStyle(sheet, name, name, style)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func strPtr(s string) *string {
	return &s
}
