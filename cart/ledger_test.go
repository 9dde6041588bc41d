package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/catalog"
	"storefront/models"
	"storefront/store"
)

const testUser = "user-1"

func testProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("89.99"), Stock: 12, Category: "Electronics"},
		{ID: 3, Name: "Pour-Over Set", Price: decimal.RequireFromString("34.00"), Stock: 25, Category: "Kitchen"},
		{ID: 4, Name: "Cast Iron Skillet", Price: decimal.RequireFromString("42.75"), Stock: 0, Category: "Kitchen"},
		{ID: 7, Name: "Linen Throw Blanket", Price: decimal.RequireFromString("9.99"), Stock: 2, Category: "Home"},
	}
}

func newTestLedger(t *testing.T) (*Ledger, store.Store) {
	t.Helper()
	st := store.NewMemory()
	cat, err := catalog.New(context.Background(), testProducts(), st, false)
	require.NoError(t, err)
	return NewLedger(st, cat), st
}

func requireLine(t *testing.T, lines []models.CartLine, productID, quantity int) {
	t.Helper()
	for _, line := range lines {
		if line.ProductID == productID {
			assert.Equal(t, quantity, line.Quantity)
			return
		}
	}
	t.Fatalf("no line for product %d", productID)
}

func TestAddLineInsertsWithQuantityOne(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	line, err := ledger.AddLine(ctx, testUser, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "Wireless Headphones", line.Name)
	assert.True(t, line.Price.Equal(decimal.RequireFromString("89.99")))

	lines, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, lines, 1)
}

func TestAddLineIncrementsExisting(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	_, err := ledger.AddLine(ctx, testUser, 1)
	require.NoError(t, err)
	line, err := ledger.AddLine(ctx, testUser, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	lines, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, lines, 1)
}

func TestAddLineUnknownProduct(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	_, err := ledger.AddLine(ctx, testUser, 999)
	assert.ErrorIs(t, err, models.ErrProductNotFound)

	lines, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAddLineOutOfStockProduct(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	_, err := ledger.AddLine(ctx, testUser, 4)
	assert.ErrorIs(t, err, models.ErrStockExceeded)
}

// The worked example: stock 2, two adds succeed, the third fails and leaves
// the ledger unchanged, then removing both units empties the ledger.
func TestStockCapExample(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	_, err := ledger.AddLine(ctx, testUser, 7)
	require.NoError(t, err)
	_, err = ledger.AddLine(ctx, testUser, 7)
	require.NoError(t, err)

	lines, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	requireLine(t, lines, 7, 2)

	_, err = ledger.AddLine(ctx, testUser, 7)
	assert.ErrorIs(t, err, models.ErrStockExceeded)

	lines, err = ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	requireLine(t, lines, 7, 2)

	require.NoError(t, ledger.AdjustQuantity(ctx, testUser, 7, -2))

	lines, err = ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestQuantityNeverExceedsStock(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	// Any sequence of adds and adjustments stays within stock.
	_, err := ledger.AddLine(ctx, testUser, 7)
	require.NoError(t, err)
	require.NoError(t, ledger.AdjustQuantity(ctx, testUser, 7, 1))
	assert.ErrorIs(t, ledger.AdjustQuantity(ctx, testUser, 7, 1), models.ErrStockExceeded)
	assert.ErrorIs(t, ledger.AdjustQuantity(ctx, testUser, 7, 5), models.ErrStockExceeded)

	lines, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	requireLine(t, lines, 7, 2)
}

func TestAdjustQuantityToZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	_, err := ledger.AddLine(ctx, testUser, 1)
	require.NoError(t, err)
	_, err = ledger.AddLine(ctx, testUser, 3)
	require.NoError(t, err)

	require.NoError(t, ledger.AdjustQuantity(ctx, testUser, 1, -1))

	lines, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].ProductID)
}

func TestAdjustQuantityMissingLineIsNoOp(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	require.NoError(t, ledger.AdjustQuantity(ctx, testUser, 1, 1))

	lines, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAdjustQuantityUnknownProduct(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	assert.ErrorIs(t, ledger.AdjustQuantity(ctx, testUser, 999, 1), models.ErrProductNotFound)
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	_, err := ledger.AddLine(ctx, testUser, 1)
	require.NoError(t, err)

	require.NoError(t, ledger.RemoveLine(ctx, testUser, 1))
	require.NoError(t, ledger.RemoveLine(ctx, testUser, 1))
	require.NoError(t, ledger.RemoveLine(ctx, testUser, 999))

	lines, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSummaryTotals(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	_, err := ledger.AddLine(ctx, testUser, 7)
	require.NoError(t, err)
	_, err = ledger.AddLine(ctx, testUser, 7)
	require.NoError(t, err)
	_, err = ledger.AddLine(ctx, testUser, 3)
	require.NoError(t, err)

	summary, err := ledger.Summary(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 3, summary.TotalItems)
	// 2 * 9.99 + 34.00
	assert.True(t, summary.TotalAmount.Equal(decimal.RequireFromString("53.98")),
		"got %s", summary.TotalAmount)
}

func TestSummaryEmptyCart(t *testing.T) {
	ledger, _ := newTestLedger(t)

	summary, err := ledger.Summary(context.Background(), testUser)
	require.NoError(t, err)
	assert.NotNil(t, summary.Items)
	assert.Empty(t, summary.Items)
	assert.True(t, summary.TotalAmount.IsZero())
}

// Persisting the ledger and reading it through a fresh ledger over the same
// store yields the same lines.
func TestLedgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	cat, err := catalog.New(ctx, testProducts(), st, false)
	require.NoError(t, err)

	ledger := NewLedger(st, cat)
	_, err = ledger.AddLine(ctx, testUser, 1)
	require.NoError(t, err)
	_, err = ledger.AddLine(ctx, testUser, 7)
	require.NoError(t, err)
	_, err = ledger.AddLine(ctx, testUser, 7)
	require.NoError(t, err)

	original, err := ledger.Lines(ctx, testUser)
	require.NoError(t, err)

	reloaded, err := NewLedger(st, cat).Lines(ctx, testUser)
	require.NoError(t, err)
	assert.ElementsMatch(t, original, reloaded)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	_, err := ledger.AddLine(ctx, "alice", 1)
	require.NoError(t, err)

	lines, err := ledger.Lines(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
