package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarechye/booking-service/internal/domain"
)

func TestCalculate_BaseTariff(t *testing.T) {
	// Чан на 3 часа для 4 гостей с мангалом: порог не превышен (4 > 4 ложно),
	// базовая цена 150 + мангал 15
	price, err := Calculate(domain.SubtypeTubOnly, 4, 3, []domain.AddOn{domain.AddOnGrill}, 0)
	require.NoError(t, err)

	assert.Equal(t, 150.0, price.BasePrice)
	assert.Equal(t, 0.0, price.ExtraHoursPrice)
	assert.Equal(t, 15.0, price.AddOnsPrice)
	assert.Equal(t, 0.0, price.DiscountAmount)
	assert.Equal(t, 165.0, price.Total)
}

func TestCalculate_GuestThresholdStrict(t *testing.T) {
	tests := []struct {
		name       string
		guestCount int
		wantBase   float64
	}{
		{"at threshold keeps base price", 4, 150},
		{"above threshold raises base price", 5, 180},
		{"below threshold keeps base price", 1, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := Calculate(domain.SubtypeTubOnly, tt.guestCount, 3, nil, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, price.BasePrice)
		})
	}
}

func TestCalculate_AboveThresholdWithAddOn(t *testing.T) {
	// 5 гостей превышают порог: база 180 вместо 150, плюс мангал 15
	price, err := Calculate(domain.SubtypeTubOnly, 5, 3, []domain.AddOn{domain.AddOnGrill}, 0)
	require.NoError(t, err)

	assert.Equal(t, 180.0, price.BasePrice)
	assert.Equal(t, 195.0, price.Total)
}

func TestCalculate_ExtraHours(t *testing.T) {
	// Баня на 5 часов: 3 включено, 2 сверх по 40
	price, err := Calculate(domain.SubtypeBathOnly, 4, 5, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 120.0, price.BasePrice)
	assert.Equal(t, 80.0, price.ExtraHoursPrice)
	assert.Equal(t, 200.0, price.Total)
}

func TestCalculate_AddOnsSummed(t *testing.T) {
	addOns := []domain.AddOn{
		domain.AddOnGrill,
		domain.AddOnCharcoal,
		domain.AddOnBroom,
		domain.AddOnTowels,
	}

	price, err := Calculate(domain.SubtypeBathOnly, 2, 3, addOns, 0)
	require.NoError(t, err)
	assert.Equal(t, 38.0, price.AddOnsPrice)
}

func TestCalculate_UnknownAddOnIgnored(t *testing.T) {
	price, err := Calculate(domain.SubtypeBathOnly, 2, 3,
		[]domain.AddOn{domain.AddOnGrill, domain.AddOn("jacuzzi")}, 0)
	require.NoError(t, err)

	// Неизвестная услуга не попадает в сумму и не ломает расчет
	assert.Equal(t, 15.0, price.AddOnsPrice)
}

func TestCalculate_Discount(t *testing.T) {
	// 10% от 165 = 16.5, округляется до 17 рублей
	price, err := Calculate(domain.SubtypeTubOnly, 4, 3, []domain.AddOn{domain.AddOnGrill}, 10)
	require.NoError(t, err)

	assert.Equal(t, 10, price.DiscountPercent)
	assert.Equal(t, 17.0, price.DiscountAmount)
	assert.Equal(t, 148.0, price.Total)
}

func TestCalculate_DiscountOutOfRange(t *testing.T) {
	for _, percent := range []int{-1, 101, 150} {
		_, err := Calculate(domain.SubtypeTubOnly, 4, 3, nil, percent)
		assert.ErrorIs(t, err, ErrDiscountOutOfRange, "percent=%d", percent)
	}
}

func TestCalculate_FullDiscount(t *testing.T) {
	price, err := Calculate(domain.SubtypeTubOnly, 4, 3, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, price.Total)
}

func TestCalculate_InvalidDuration(t *testing.T) {
	_, err := Calculate(domain.SubtypeTubOnly, 4, 2, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Calculate(domain.SubtypeTubOnly, 4, 6, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCalculate_UnknownSubtype(t *testing.T) {
	_, err := Calculate(domain.Subtype("igloo"), 2, 3, nil, 0)
	assert.ErrorIs(t, err, ErrUnknownSubtype)
}

func TestCalculate_InvalidGuestCount(t *testing.T) {
	_, err := Calculate(domain.SubtypeTubOnly, 0, 3, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidGuestCount)
}

func TestCalculate_Deterministic(t *testing.T) {
	addOns := []domain.AddOn{domain.AddOnGrill, domain.AddOnBroom}

	first, err := Calculate(domain.SubtypeSpaFamily, 7, 4, addOns, 15)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Calculate(domain.SubtypeSpaFamily, 7, 4, addOns, 15)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculate_TotalInvariant(t *testing.T) {
	price, err := Calculate(domain.SubtypeSpaStandard, 5, 4, []domain.AddOn{domain.AddOnTowels}, 7)
	require.NoError(t, err)

	assert.Equal(t, price.Subtotal()-price.DiscountAmount, price.Total)
}
