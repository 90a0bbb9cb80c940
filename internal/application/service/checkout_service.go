package service

import (
	"context"
	"time"

	"github.com/cutiefy/pos-api/internal/domain/entity"
	"github.com/cutiefy/pos-api/internal/domain/enum"
	"github.com/cutiefy/pos-api/internal/domain/repository"
	"github.com/cutiefy/pos-api/pkg/email"
	"github.com/cutiefy/pos-api/pkg/saleid"
	"go.uber.org/zap"
)

// ReceiptSender delivers a rendered receipt to a customer address. Email
// failure never affects a committed sale.
type ReceiptSender interface {
	SendReceipt(toEmail string, data email.ReceiptData) error
}

// CheckoutService is the settlement engine: it turns a validated cart into
// an immutable sale record, attributes profit across lines by revenue
// share, and applies the inventory decrements.
type CheckoutService struct {
	items             repository.ItemRepository
	sales             repository.SaleRepository
	cart              *CartService
	sessions          *SessionManager
	mailer            ReceiptSender
	logger            *zap.Logger
	lowStockThreshold int
}

// NewCheckoutService creates a new checkout service. mailer may be nil,
// in which case no receipts are sent.
func NewCheckoutService(
	items repository.ItemRepository,
	sales repository.SaleRepository,
	cart *CartService,
	sessions *SessionManager,
	mailer ReceiptSender,
	logger *zap.Logger,
	lowStockThreshold int,
) *CheckoutService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &CheckoutService{
		items:             items,
		sales:             sales,
		cart:              cart,
		sessions:          sessions,
		mailer:            mailer,
		logger:            logger,
		lowStockThreshold: lowStockThreshold,
	}
}

// CheckoutInput carries the billing terms chosen at checkout.
type CheckoutInput struct {
	DiscountKind   enum.DiscountType
	DiscountValue  float64
	DeliveryCharge float64
}

// StockAlert is an advisory signal raised when a settlement decrement
// leaves an item out of stock or below the low-stock threshold.
type StockAlert struct {
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	Remaining  int    `json:"remaining"`
	OutOfStock bool   `json:"out_of_stock"`
}

// SettlementResult is returned on successful checkout.
type SettlementResult struct {
	SaleID         string       `json:"sale_id"`
	Subtotal       float64      `json:"subtotal"`
	Discount       float64      `json:"discount"`
	DeliveryCharge float64      `json:"delivery_charge"`
	TotalPaid      float64      `json:"total_paid"`
	TotalCost      float64      `json:"total_cost"`
	TotalProfit    float64      `json:"total_profit"`
	StockAlerts    []StockAlert `json:"stock_alerts,omitempty"`
	ReceiptSent    bool         `json:"receipt_sent"`
}

// Settle finalizes the session's cart into a persisted sale.
//
// Profit is defined as cash actually collected minus true cost
// (totalPaid - totalCost), not as the nominal subtotal/discount math:
// totalPaid includes delivery and the cost basis is re-read from inventory
// at settlement time because costs can change between purchase and sale.
// The total profit is then attributed per line proportionally to each
// line's share of the subtotal.
//
// Inventory decrements already applied before a late persistence failure
// are not rolled back; without multi-document transactions this is an
// accepted at-least-once-effect tradeoff.
func (s *CheckoutService) Settle(ctx context.Context, session *CartSession, input CheckoutInput) (*SettlementResult, error) {
	if len(session.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.cart.ValidateCart(ctx, session); err != nil {
		return nil, err
	}

	subtotal := session.Subtotal()
	discountAmount := ApplyDiscount(subtotal, input.DiscountKind, input.DiscountValue)
	totalPaid := FinalTotal(subtotal, discountAmount, input.DeliveryCharge)

	// Re-read each line's cost basis. A vanished item costs 0 rather than
	// failing the sale.
	lines := make([]entity.SaleLine, 0, len(session.Lines))
	var totalCost float64
	for _, cartLine := range session.Lines {
		var purchasePrice float64
		item, err := s.items.GetByItemID(ctx, cartLine.ItemID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			purchasePrice = item.PurchasePrice
		}

		lineCost := purchasePrice * float64(cartLine.Quantity)
		totalCost += lineCost

		lines = append(lines, entity.SaleLine{
			ItemID:        cartLine.ItemID,
			ItemName:      cartLine.ItemName,
			SalePrice:     cartLine.SalePrice,
			Quantity:      cartLine.Quantity,
			Total:         cartLine.Total,
			PurchasePrice: purchasePrice,
			TotalCost:     lineCost,
		})
	}

	totalProfit := totalPaid - totalCost

	for i := range lines {
		lines[i].TotalProfit, lines[i].ProfitPerUnit = AttributeProfit(
			totalProfit, lines[i].Total, subtotal, lines[i].Quantity)
	}

	sale := &entity.Sale{
		ReceiptID:      saleid.New(),
		CustomerName:   session.Customer.Name,
		CustomerEmail:  session.Customer.Email,
		CustomerPhone:  session.Customer.Phone,
		Subtotal:       subtotal,
		Discount:       discountAmount,
		DeliveryCharge: input.DeliveryCharge,
		TotalPaid:      totalPaid,
		TotalProfit:    totalProfit,
		CreatedAt:      time.Now(),
		Lines:          lines,
	}

	if err := s.sales.Create(ctx, sale); err != nil {
		s.logger.Error("failed to persist sale",
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
		return nil, &PersistenceError{Op: "create sale", Err: err}
	}

	// Decrements happen after the sale is durably written. Quantities are
	// clamped at zero inside the store adapter.
	alerts := make([]StockAlert, 0)
	for _, line := range lines {
		newQty, err := s.items.DecrementQuantity(ctx, line.ItemID, line.Quantity)
		if err != nil {
			s.logger.Error("inventory decrement failed",
				zap.String("item_id", line.ItemID),
				zap.Error(err),
			)
			continue
		}
		if newQty == 0 {
			alerts = append(alerts, StockAlert{
				ItemID:     line.ItemID,
				ItemName:   line.ItemName,
				Remaining:  0,
				OutOfStock: true,
			})
		} else if newQty < s.lowStockThreshold {
			alerts = append(alerts, StockAlert{
				ItemID:    line.ItemID,
				ItemName:  line.ItemName,
				Remaining: newQty,
			})
		}
	}

	receiptSent := s.sendReceipt(sale)

	s.sessions.End(session.ID)

	s.logger.Info("sale settled",
		zap.String("sale_id", sale.ReceiptID),
		zap.Float64("total_paid", totalPaid),
		zap.Float64("total_profit", totalProfit),
		zap.Int("lines", len(lines)),
	)

	return &SettlementResult{
		SaleID:         sale.ReceiptID,
		Subtotal:       subtotal,
		Discount:       discountAmount,
		DeliveryCharge: input.DeliveryCharge,
		TotalPaid:      totalPaid,
		TotalCost:      totalCost,
		TotalProfit:    totalProfit,
		StockAlerts:    alerts,
		ReceiptSent:    receiptSent,
	}, nil
}

// sendReceipt emails the receipt after the sale is committed. Failure only
// degrades the confirmation; it never rolls back the sale.
func (s *CheckoutService) sendReceipt(sale *entity.Sale) bool {
	if s.mailer == nil || sale.CustomerEmail == "" {
		return false
	}

	items := make([]email.ReceiptItem, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		items = append(items, email.ReceiptItem{
			Name:     line.ItemName,
			Quantity: line.Quantity,
			Price:    line.SalePrice,
			Total:    line.Total,
		})
	}

	err := s.mailer.SendReceipt(sale.CustomerEmail, email.ReceiptData{
		SaleID:         sale.ReceiptID,
		CustomerName:   sale.CustomerName,
		CustomerEmail:  sale.CustomerEmail,
		Items:          items,
		Subtotal:       sale.Subtotal,
		Discount:       sale.Discount,
		DeliveryCharge: sale.DeliveryCharge,
		TotalPaid:      sale.TotalPaid,
		Date:           sale.CreatedAt,
	})
	if err != nil {
		s.logger.Warn("receipt email failed, sale already committed",
			zap.String("sale_id", sale.ReceiptID),
			zap.Error(err),
		)
		return false
	}
	return true
}

// AttributeProfit computes a line's share of the sale profit, weighted by
// its share of the subtotal, plus the per-unit figure. Zero subtotal means
// zero profit on every line; zero quantity guards the per-unit division.
func AttributeProfit(totalProfit, lineTotal, subtotal float64, quantity int) (lineProfit, perUnit float64) {
	if subtotal <= 0 {
		return 0, 0
	}
	lineProfit = totalProfit * (lineTotal / subtotal)
	if quantity > 0 {
		perUnit = lineProfit / float64(quantity)
	}
	return lineProfit, perUnit
}
