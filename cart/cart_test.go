package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"kedai/model"
)

func product(id uint, name string, price float64) model.Product {
	return model.Product{Model: gorm.Model{ID: id}, Name: name, Price: price}
}

func TestAddMergesSameProduct(t *testing.T) {
	c := New()
	kopi := product(1, "Kopi Hitam", 15000)

	c.Add(kopi, 1)
	c.Add(kopi, 2)

	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, 3, c.Lines()[0].Quantity)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(product(2, "Roti Bakar", 18000), 1)
	c.Add(product(1, "Kopi Hitam", 15000), 1)

	assert.Equal(t, uint(2), c.Lines()[0].ProductID)
	assert.Equal(t, uint(1), c.Lines()[1].ProductID)
}

func TestAddSnapshotsPromoPrice(t *testing.T) {
	c := New()
	promo := model.Product{
		Model:           gorm.Model{ID: 7},
		Name:            "Kopi Susu",
		OriginalPrice:   100000,
		DiscountPercent: 20,
		IsPromo:         true,
	}
	c.Add(promo, 1)
	assert.Equal(t, float64(80000), c.Lines()[0].UnitPrice)
}

func TestAddSnapshotsRegularPriceAfterPromoLapses(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	lapsed := model.Product{
		Model:           gorm.Model{ID: 9},
		Name:            "Kopi Susu",
		Price:           95000,
		OriginalPrice:   100000,
		DiscountPercent: 20,
		IsPromo:         true,
		PromoValidUntil: &past,
	}

	c := New()
	c.Add(lapsed, 1)

	assert.Equal(t, float64(95000), c.Lines()[0].UnitPrice)
}

func TestAddIgnoresNonPositiveQuantity(t *testing.T) {
	c := New()
	c.Add(product(1, "Kopi Hitam", 15000), 0)
	c.Add(product(1, "Kopi Hitam", 15000), -2)
	assert.True(t, c.Empty())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	c.Add(product(1, "Kopi Hitam", 15000), 2)
	c.Add(product(2, "Roti Bakar", 18000), 1)

	c.UpdateQuantity(1, 0)

	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, uint(2), c.Lines()[0].ProductID)
}

func TestUpdateQuantitySetsQuantity(t *testing.T) {
	c := New()
	c.Add(product(1, "Kopi Hitam", 15000), 2)

	c.UpdateQuantity(1, 5)

	assert.Equal(t, 5, c.Lines()[0].Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	c.Add(product(1, "Kopi Hitam", 15000), 1)
	c.Add(product(2, "Roti Bakar", 18000), 1)

	c.Remove(1)
	assert.Len(t, c.Lines(), 1)

	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, float64(0), c.Total())
}

func TestTotalEqualsSumOfSubtotals(t *testing.T) {
	c := New()
	c.Add(product(1, "Kopi Hitam", 15000), 2)
	c.Add(product(2, "Roti Bakar", 20000), 1)

	var sum float64
	for _, l := range c.Lines() {
		sum += l.Subtotal()
	}
	assert.Equal(t, sum, c.Total())
	assert.Equal(t, float64(50000), c.Total())
}
