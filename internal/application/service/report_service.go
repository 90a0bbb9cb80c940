package service

import (
	"context"
	"time"

	"github.com/cutiefy/pos-api/internal/domain/entity"
	"github.com/cutiefy/pos-api/internal/domain/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/cutiefy/pos-api/pkg/excel"
)

// ReportService builds the daily sales report. Profit figures are
// recomputed at read time rather than trusted from the stored records, so
// sales written before a cost correction still report sensibly.
type ReportService struct {
	sales  repository.SaleRepository
	items  repository.ItemRepository
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(sales repository.SaleRepository, items repository.ItemRepository, logger *zap.Logger) *ReportService {
	return &ReportService{sales: sales, items: items, logger: logger}
}

// DailySummary aggregates one day of trading.
type DailySummary struct {
	Date              string  `json:"date"`
	TotalSales        int     `json:"total_sales"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalCost         float64 `json:"total_cost"`
	TotalProfit       float64 `json:"total_profit"`
	ProfitMargin      float64 `json:"profit_margin"`
	ItemsSold         int     `json:"items_sold"`
	AvgRevenuePerSale float64 `json:"avg_revenue_per_sale"`
	AvgProfitPerSale  float64 `json:"avg_profit_per_sale"`
}

// ReportRow is one sale line flattened for tabular output, with its
// recomputed cost and profit figures.
type ReportRow struct {
	SaleID        string  `json:"sale_id"`
	Time          string  `json:"time"`
	CustomerName  string  `json:"customer_name"`
	ItemID        string  `json:"item_id"`
	ItemName      string  `json:"item_name"`
	Quantity      int     `json:"quantity"`
	SalePrice     float64 `json:"sale_price"`
	LineTotal     float64 `json:"line_total"`
	PurchasePrice float64 `json:"purchase_price"`
	LineCost      float64 `json:"line_cost"`
	LineProfit    float64 `json:"line_profit"`
	ProfitMargin  float64 `json:"profit_margin"`
}

// DailyReport is the full reporting payload for one day.
type DailyReport struct {
	Summary DailySummary  `json:"summary"`
	Sales   []entity.Sale `json:"sales"`
	Rows    []ReportRow   `json:"rows"`
}

// DailyReport returns all sales for the calendar day containing date,
// with profits recomputed against current inventory cost where the stored
// cost basis is missing.
func (s *ReportService) DailyReport(ctx context.Context, date time.Time) (*DailyReport, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	sales, err := s.sales.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// One inventory snapshot serves every fallback lookup in the report.
	invIndex, err := s.inventoryIndex(ctx)
	if err != nil {
		return nil, err
	}

	summary := DailySummary{Date: start.Format("2006-01-02")}
	rows := make([]ReportRow, 0, len(sales))

	for i := range sales {
		sale := &sales[i]
		cost, profit := RecomputeSale(sale, invIndex)

		summary.TotalSales++
		summary.TotalRevenue += sale.TotalPaid
		summary.TotalCost += cost
		summary.TotalProfit += profit
		summary.ItemsSold += len(sale.Lines)

		rows = append(rows, s.saleRows(sale, invIndex, profit)...)
	}

	if summary.TotalRevenue > 0 {
		summary.ProfitMargin = summary.TotalProfit / summary.TotalRevenue * 100
	}
	if summary.TotalSales > 0 {
		summary.AvgRevenuePerSale = summary.TotalRevenue / float64(summary.TotalSales)
		summary.AvgProfitPerSale = summary.TotalProfit / float64(summary.TotalSales)
	}

	s.logger.Info("daily report built",
		zap.String("date", summary.Date),
		zap.Int("sales", summary.TotalSales),
		zap.Float64("revenue", summary.TotalRevenue),
	)

	return &DailyReport{Summary: summary, Sales: sales, Rows: rows}, nil
}

// ExportDaily renders the day's report as an xlsx workbook.
func (s *ReportService) ExportDaily(ctx context.Context, date time.Time) (*excelize.File, error) {
	report, err := s.DailyReport(ctx, date)
	if err != nil {
		return nil, err
	}

	headers := []string{
		"Sale ID", "Time", "Customer", "Item ID", "Item",
		"Qty", "Sale Price", "Line Total", "Purchase Price",
		"Line Cost", "Line Profit", "Margin %",
	}
	rows := make([][]interface{}, 0, len(report.Rows)+4)
	for _, r := range report.Rows {
		rows = append(rows, []interface{}{
			r.SaleID, r.Time, r.CustomerName, r.ItemID, r.ItemName,
			r.Quantity, r.SalePrice, r.LineTotal, r.PurchasePrice,
			r.LineCost, r.LineProfit, r.ProfitMargin,
		})
	}

	// Trailing summary block after a blank row.
	sum := report.Summary
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Totals", "", "", "", "", sum.ItemsSold, "", sum.TotalRevenue, "", sum.TotalCost, sum.TotalProfit, sum.ProfitMargin},
		[]interface{}{"Sales", sum.TotalSales},
		[]interface{}{"Avg per sale", "", "", "", "", "", "", sum.AvgRevenuePerSale, "", "", sum.AvgProfitPerSale},
	)

	return excel.BuildSheet("Sales_Profit_"+report.Summary.Date, headers, rows)
}

// RecomputeSale derives a sale's cost and profit from its lines, falling
// back to the current inventory purchase price when a line's stored cost
// basis is missing (zero). Profit stays defined as total paid minus cost.
func RecomputeSale(sale *entity.Sale, invIndex map[string]entity.Item) (cost, profit float64) {
	for _, line := range sale.Lines {
		cost += lineCost(line, invIndex)
	}
	return cost, sale.TotalPaid - cost
}

func lineCost(line entity.SaleLine, invIndex map[string]entity.Item) float64 {
	purchasePrice := line.PurchasePrice
	if purchasePrice == 0 {
		if item, ok := invIndex[line.ItemID]; ok {
			purchasePrice = item.PurchasePrice
		}
	}
	return purchasePrice * float64(line.Quantity)
}

// saleRows flattens one sale into report rows. Line revenue is scaled by
// totalPaid/subtotal so discounts and delivery are reflected in the
// per-line margin.
func (s *ReportService) saleRows(sale *entity.Sale, invIndex map[string]entity.Item, saleProfit float64) []ReportRow {
	rows := make([]ReportRow, 0, len(sale.Lines))

	revenueScale := 1.0
	if sale.Subtotal > 0 {
		revenueScale = sale.TotalPaid / sale.Subtotal
	}

	for _, line := range sale.Lines {
		cost := lineCost(line, invIndex)
		effectiveRevenue := line.Total * revenueScale

		lineProfit, _ := AttributeProfit(saleProfit, line.Total, sale.Subtotal, line.Quantity)

		var margin float64
		if effectiveRevenue > 0 {
			margin = lineProfit / effectiveRevenue * 100
		}

		purchasePrice := line.PurchasePrice
		if purchasePrice == 0 {
			if item, ok := invIndex[line.ItemID]; ok {
				purchasePrice = item.PurchasePrice
			}
		}

		rows = append(rows, ReportRow{
			SaleID:        sale.ReceiptID,
			Time:          sale.CreatedAt.Format("15:04:05"),
			CustomerName:  sale.CustomerName,
			ItemID:        line.ItemID,
			ItemName:      line.ItemName,
			Quantity:      line.Quantity,
			SalePrice:     line.SalePrice,
			LineTotal:     line.Total,
			PurchasePrice: purchasePrice,
			LineCost:      cost,
			LineProfit:    lineProfit,
			ProfitMargin:  margin,
		})
	}
	return rows
}

func (s *ReportService) inventoryIndex(ctx context.Context) (map[string]entity.Item, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]entity.Item, len(items))
	for _, item := range items {
		index[item.ItemID] = item
	}
	return index, nil
}
