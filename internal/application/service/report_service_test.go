package service

import (
	"context"
	"testing"
	"time"

	"github.com/cutiefy/pos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func reportDay() time.Time {
	return time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
}

func storedSale(receiptID string, at time.Time, subtotal, discount, delivery float64, lines ...entity.SaleLine) entity.Sale {
	return entity.Sale{
		ReceiptID:      receiptID,
		Subtotal:       subtotal,
		Discount:       discount,
		DeliveryCharge: delivery,
		TotalPaid:      subtotal - discount + delivery,
		CreatedAt:      at,
		Lines:          lines,
	}
}

func TestDailyReport(t *testing.T) {
	ctx := context.Background()
	day := reportDay()

	t.Run("aggregates only the requested day", func(t *testing.T) {
		itemRepo := newFakeItemRepo()
		saleRepo := newFakeSaleRepo()
		svc := NewReportService(saleRepo, itemRepo, zap.NewNop())

		inDay := storedSale("AAAA1111", day.Add(10*time.Hour), 200, 0, 0, entity.SaleLine{
			ItemID: "A", ItemName: "Alpha", SalePrice: 50, Quantity: 4, Total: 200,
			PurchasePrice: 20, TotalCost: 80,
		})
		dayBefore := storedSale("BBBB2222", day.Add(-2*time.Hour), 999, 0, 0, entity.SaleLine{
			ItemID: "A", Quantity: 1, Total: 999,
		})
		dayAfter := storedSale("CCCC3333", day.Add(25*time.Hour), 999, 0, 0, entity.SaleLine{
			ItemID: "A", Quantity: 1, Total: 999,
		})
		require.NoError(t, saleRepo.Create(ctx, &inDay))
		require.NoError(t, saleRepo.Create(ctx, &dayBefore))
		require.NoError(t, saleRepo.Create(ctx, &dayAfter))

		report, err := svc.DailyReport(ctx, day.Add(15*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, "2026-08-29", report.Summary.Date)
		assert.Equal(t, 1, report.Summary.TotalSales)
		assert.InDelta(t, 200.0, report.Summary.TotalRevenue, 1e-9)
		assert.InDelta(t, 80.0, report.Summary.TotalCost, 1e-9)
		assert.InDelta(t, 120.0, report.Summary.TotalProfit, 1e-9)
		assert.InDelta(t, 60.0, report.Summary.ProfitMargin, 1e-9)
		assert.Equal(t, 1, report.Summary.ItemsSold)
		require.Len(t, report.Rows, 1)
		assert.Equal(t, "AAAA1111", report.Rows[0].SaleID)
	})

	t.Run("averages across multiple sales", func(t *testing.T) {
		itemRepo := newFakeItemRepo()
		saleRepo := newFakeSaleRepo()
		svc := NewReportService(saleRepo, itemRepo, zap.NewNop())

		first := storedSale("AAAA1111", day.Add(9*time.Hour), 100, 0, 0, entity.SaleLine{
			ItemID: "A", Quantity: 2, Total: 100, PurchasePrice: 25,
		})
		second := storedSale("BBBB2222", day.Add(17*time.Hour), 300, 0, 0, entity.SaleLine{
			ItemID: "B", Quantity: 3, Total: 300, PurchasePrice: 50,
		})
		require.NoError(t, saleRepo.Create(ctx, &first))
		require.NoError(t, saleRepo.Create(ctx, &second))

		report, err := svc.DailyReport(ctx, day)
		require.NoError(t, err)

		assert.Equal(t, 2, report.Summary.TotalSales)
		assert.InDelta(t, 400.0, report.Summary.TotalRevenue, 1e-9)
		// costs: 2*25 + 3*50 = 200
		assert.InDelta(t, 200.0, report.Summary.TotalCost, 1e-9)
		assert.InDelta(t, 200.0, report.Summary.AvgRevenuePerSale, 1e-9)
		assert.InDelta(t, 100.0, report.Summary.AvgProfitPerSale, 1e-9)
	})

	t.Run("missing stored cost falls back to current inventory price", func(t *testing.T) {
		itemRepo := newFakeItemRepo(testItem("A", "Alpha", 30, 50, 10))
		saleRepo := newFakeSaleRepo()
		svc := NewReportService(saleRepo, itemRepo, zap.NewNop())

		// Legacy record: no purchase price was captured at settlement.
		sale := storedSale("AAAA1111", day.Add(12*time.Hour), 100, 0, 0, entity.SaleLine{
			ItemID: "A", ItemName: "Alpha", SalePrice: 50, Quantity: 2, Total: 100,
		})
		require.NoError(t, saleRepo.Create(ctx, &sale))

		report, err := svc.DailyReport(ctx, day)
		require.NoError(t, err)

		assert.InDelta(t, 60.0, report.Summary.TotalCost, 1e-9)
		assert.InDelta(t, 40.0, report.Summary.TotalProfit, 1e-9)
		require.Len(t, report.Rows, 1)
		assert.InDelta(t, 30.0, report.Rows[0].PurchasePrice, 1e-9)
		assert.InDelta(t, 60.0, report.Rows[0].LineCost, 1e-9)
	})

	t.Run("missing cost and vanished item reports zero cost", func(t *testing.T) {
		itemRepo := newFakeItemRepo()
		saleRepo := newFakeSaleRepo()
		svc := NewReportService(saleRepo, itemRepo, zap.NewNop())

		sale := storedSale("AAAA1111", day.Add(12*time.Hour), 100, 0, 0, entity.SaleLine{
			ItemID: "GONE", ItemName: "Gone", Quantity: 2, Total: 100,
		})
		require.NoError(t, saleRepo.Create(ctx, &sale))

		report, err := svc.DailyReport(ctx, day)
		require.NoError(t, err)

		assert.InDelta(t, 0.0, report.Summary.TotalCost, 1e-9)
		assert.InDelta(t, 100.0, report.Summary.TotalProfit, 1e-9)
	})

	t.Run("empty day yields a zeroed summary", func(t *testing.T) {
		svc := NewReportService(newFakeSaleRepo(), newFakeItemRepo(), zap.NewNop())

		report, err := svc.DailyReport(ctx, day)
		require.NoError(t, err)

		assert.Zero(t, report.Summary.TotalSales)
		assert.Zero(t, report.Summary.TotalRevenue)
		assert.Zero(t, report.Summary.ProfitMargin)
		assert.Zero(t, report.Summary.AvgRevenuePerSale)
		assert.Empty(t, report.Rows)
	})

	t.Run("row margins reflect discount and delivery", func(t *testing.T) {
		itemRepo := newFakeItemRepo()
		saleRepo := newFakeSaleRepo()
		svc := NewReportService(saleRepo, itemRepo, zap.NewNop())

		// subtotal 400, 10% discount, delivery 40: paid 400.
		sale := storedSale("AAAA1111", day.Add(12*time.Hour), 400, 40, 40,
			entity.SaleLine{ItemID: "A", ItemName: "Alpha", SalePrice: 50, Quantity: 4, Total: 200, PurchasePrice: 20},
			entity.SaleLine{ItemID: "B", ItemName: "Beta", SalePrice: 25, Quantity: 8, Total: 200, PurchasePrice: 10},
		)
		require.NoError(t, saleRepo.Create(ctx, &sale))

		report, err := svc.DailyReport(ctx, day)
		require.NoError(t, err)
		require.Len(t, report.Rows, 2)

		// Sale profit 400 - 160 = 240, split evenly across the equal lines.
		assert.InDelta(t, 120.0, report.Rows[0].LineProfit, 1e-9)
		assert.InDelta(t, 120.0, report.Rows[1].LineProfit, 1e-9)
		// Effective per-line revenue is 200 * (400/400) = 200, margin 60%.
		assert.InDelta(t, 60.0, report.Rows[0].ProfitMargin, 1e-9)
	})
}

func TestRecomputeSale(t *testing.T) {
	inv := map[string]entity.Item{
		"A": testItem("A", "Alpha", 30, 50, 10),
	}
	sale := storedSale("AAAA1111", reportDay(), 200, 0, 0,
		entity.SaleLine{ItemID: "A", Quantity: 2, Total: 100, PurchasePrice: 25},
		entity.SaleLine{ItemID: "A", Quantity: 2, Total: 100}, // missing cost basis
	)

	cost, profit := RecomputeSale(&sale, inv)
	assert.InDelta(t, 110.0, cost, 1e-9)
	assert.InDelta(t, 90.0, profit, 1e-9)

	// Pure function of persisted state: a second pass is identical.
	cost2, profit2 := RecomputeSale(&sale, inv)
	assert.Equal(t, cost, cost2)
	assert.Equal(t, profit, profit2)
}

func TestExportDaily(t *testing.T) {
	ctx := context.Background()
	day := reportDay()

	itemRepo := newFakeItemRepo()
	saleRepo := newFakeSaleRepo()
	svc := NewReportService(saleRepo, itemRepo, zap.NewNop())

	sale := storedSale("AAAA1111", day.Add(11*time.Hour), 100, 0, 0, entity.SaleLine{
		ItemID: "A", ItemName: "Alpha", SalePrice: 50, Quantity: 2, Total: 100, PurchasePrice: 20,
	})
	require.NoError(t, saleRepo.Create(ctx, &sale))

	f, err := svc.ExportDaily(ctx, day)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Sales_Profit_2026-08-29"
	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sale ID", header)

	saleID, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "AAAA1111", saleID)

	itemName, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", itemName)

	// One data row, then a blank row, then the summary block.
	totalsLabel, err := f.GetCellValue(sheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Totals", totalsLabel)
}
