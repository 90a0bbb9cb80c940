package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cutiefy/pos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testItem(itemID, name string, purchase, sale float64, qty int) entity.Item {
	return entity.Item{
		ItemID:            itemID,
		Name:              name,
		PurchasePrice:     purchase,
		SalePrice:         sale,
		QuantityAvailable: qty,
	}
}

func newCartFixture(items ...entity.Item) (*CartService, *fakeItemRepo, *SessionManager) {
	repo := newFakeItemRepo(items...)
	return NewCartService(repo, zap.NewNop()), repo, NewSessionManager()
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a new line with a fresh price snapshot", func(t *testing.T) {
		cart, _, sessions := newCartFixture(testItem("SCR-001", "Pearl Scrunchie", 20, 50, 10))
		session := sessions.Start(Customer{Name: "Asha"})

		err := cart.AddToCart(ctx, session, "SCR-001", 3)
		require.NoError(t, err)

		require.Len(t, session.Lines, 1)
		line := session.Lines[0]
		assert.Equal(t, "SCR-001", line.ItemID)
		assert.Equal(t, "Pearl Scrunchie", line.ItemName)
		assert.Equal(t, 3, line.Quantity)
		assert.InDelta(t, 150.0, line.Total, 1e-9)
	})

	t.Run("merges repeat adds into one line", func(t *testing.T) {
		cart, _, sessions := newCartFixture(testItem("SCR-001", "Pearl Scrunchie", 20, 50, 10))
		session := sessions.Start(Customer{})

		require.NoError(t, cart.AddToCart(ctx, session, "SCR-001", 2))
		require.NoError(t, cart.AddToCart(ctx, session, "SCR-001", 3))

		require.Len(t, session.Lines, 1)
		assert.Equal(t, 5, session.Lines[0].Quantity)
		assert.InDelta(t, 250.0, session.Lines[0].Total, 1e-9)
	})

	t.Run("merged line picks up a price change", func(t *testing.T) {
		cart, repo, sessions := newCartFixture(testItem("SCR-001", "Pearl Scrunchie", 20, 50, 10))
		session := sessions.Start(Customer{})
		require.NoError(t, cart.AddToCart(ctx, session, "SCR-001", 2))

		updated := testItem("SCR-001", "Pearl Scrunchie", 20, 60, 10)
		require.NoError(t, repo.Update(ctx, &updated))

		require.NoError(t, cart.AddToCart(ctx, session, "SCR-001", 1))

		// Whole line is repriced at the new rate, not just the added unit.
		assert.InDelta(t, 60.0, session.Lines[0].SalePrice, 1e-9)
		assert.InDelta(t, 180.0, session.Lines[0].Total, 1e-9)
	})

	t.Run("counts cart contents against availability", func(t *testing.T) {
		cart, _, sessions := newCartFixture(testItem("SCR-001", "Pearl Scrunchie", 20, 50, 5))
		session := sessions.Start(Customer{})
		require.NoError(t, cart.AddToCart(ctx, session, "SCR-001", 4))

		err := cart.AddToCart(ctx, session, "SCR-001", 2)

		var oos *OutOfStockError
		require.ErrorAs(t, err, &oos)
		assert.Equal(t, 4, oos.InCart)
		assert.Equal(t, 1, oos.CanAdd)
		// Cart is untouched by the failed add.
		assert.Equal(t, 4, session.Lines[0].Quantity)
	})

	t.Run("reports zero addable when cart already holds all stock", func(t *testing.T) {
		cart, _, sessions := newCartFixture(testItem("SCR-001", "Pearl Scrunchie", 20, 50, 5))
		session := sessions.Start(Customer{})
		require.NoError(t, cart.AddToCart(ctx, session, "SCR-001", 5))

		err := cart.AddToCart(ctx, session, "SCR-001", 1)

		var oos *OutOfStockError
		require.ErrorAs(t, err, &oos)
		assert.Equal(t, 0, oos.CanAdd)
	})

	t.Run("unknown item", func(t *testing.T) {
		cart, _, sessions := newCartFixture()
		session := sessions.Start(Customer{})

		err := cart.AddToCart(ctx, session, "GHOST", 1)

		var removed *ItemRemovedError
		assert.ErrorAs(t, err, &removed)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		cart, repo, sessions := newCartFixture(testItem("SCR-001", "Pearl Scrunchie", 20, 50, 5))
		repo.getErr = errors.New("connection reset")
		session := sessions.Start(Customer{})

		err := cart.AddToCart(ctx, session, "SCR-001", 1)
		assert.EqualError(t, err, "connection reset")
	})
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	cart, _, sessions := newCartFixture(
		testItem("A", "Alpha", 1, 10, 50),
		testItem("B", "Beta", 1, 20, 50),
		testItem("C", "Gamma", 1, 30, 50),
	)
	session := sessions.Start(Customer{})
	require.NoError(t, cart.AddToCart(ctx, session, "A", 1))
	require.NoError(t, cart.AddToCart(ctx, session, "B", 1))
	require.NoError(t, cart.AddToCart(ctx, session, "C", 1))

	cart.RemoveFromCart(session, 1)

	require.Len(t, session.Lines, 2)
	assert.Equal(t, "A", session.Lines[0].ItemID)
	assert.Equal(t, "C", session.Lines[1].ItemID)

	// The removed item can be re-added and lands as a fresh line.
	require.NoError(t, cart.AddToCart(ctx, session, "B", 2))
	require.Len(t, session.Lines, 3)
	assert.Equal(t, "B", session.Lines[2].ItemID)
	assert.Equal(t, 2, session.Lines[2].Quantity)

	// Out-of-range indexes are ignored.
	cart.RemoveFromCart(session, -1)
	cart.RemoveFromCart(session, 99)
	assert.Len(t, session.Lines, 3)
}

func TestValidateCart(t *testing.T) {
	ctx := context.Background()

	t.Run("passes when stock still covers every line", func(t *testing.T) {
		cart, _, sessions := newCartFixture(testItem("A", "Alpha", 1, 10, 5))
		session := sessions.Start(Customer{})
		require.NoError(t, cart.AddToCart(ctx, session, "A", 5))

		assert.NoError(t, cart.ValidateCart(ctx, session))
	})

	t.Run("detects stock reduced after the add", func(t *testing.T) {
		cart, repo, sessions := newCartFixture(testItem("A", "Alpha", 1, 10, 5))
		session := sessions.Start(Customer{})
		require.NoError(t, cart.AddToCart(ctx, session, "A", 5))

		// Another terminal buys 3 units in the meantime.
		_, err := repo.DecrementQuantity(ctx, "A", 3)
		require.NoError(t, err)

		err = cart.ValidateCart(ctx, session)
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 5, insufficient.Requested)
		assert.Equal(t, 2, insufficient.Available)
	})

	t.Run("detects item deleted after the add", func(t *testing.T) {
		cart, repo, sessions := newCartFixture(testItem("A", "Alpha", 1, 10, 5))
		session := sessions.Start(Customer{})
		require.NoError(t, cart.AddToCart(ctx, session, "A", 1))

		require.NoError(t, repo.Delete(ctx, "A"))

		var removed *ItemRemovedError
		assert.ErrorAs(t, cart.ValidateCart(ctx, session), &removed)
	})
}

func TestSessionManager(t *testing.T) {
	sessions := NewSessionManager()

	session := sessions.Start(Customer{Name: "Asha", Email: "asha@example.com"})
	assert.NotEqual(t, session.ID.String(), "00000000-0000-0000-0000-000000000000")

	got, err := sessions.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	sessions.End(session.ID)
	_, err = sessions.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Ending twice is harmless.
	sessions.End(session.ID)
}
