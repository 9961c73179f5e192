package domain

// Subtype тип услуги в рамках категории ресурса
type Subtype string

const (
	SubtypeBathOnly    Subtype = "bath_only"
	SubtypeTubOnly     Subtype = "tub_only"
	SubtypeTerraceOnly Subtype = "terrace_only"
	SubtypeBathWithTub Subtype = "bath_with_tub"

	SubtypeSpaStandard Subtype = "spa_standard"
	SubtypeSpaFamily   Subtype = "spa_family"

	SubtypeQuadSingle Subtype = "quad_single"
	SubtypeQuadDouble Subtype = "quad_double"
)

// AddOn дополнительная услуга с фиксированной ценой
type AddOn string

const (
	AddOnGrill    AddOn = "grill"
	AddOnCharcoal AddOn = "charcoal"
	AddOnBroom    AddOn = "broom"
	AddOnTowels   AddOn = "towels"
)

// Tariff тариф типа услуги
// Закрытая таблица с ключом-перечислением: неизвестный тип услуги это ошибка
// на входе, а не сюрприз в рантайме
type Tariff struct {
	Category Category

	// BasePrice базовая цена за включенную длительность
	BasePrice float64
	// GuestThreshold порог гостей: при количестве СТРОГО больше порога
	// применяется ElevatedPrice; 0 означает, что порога нет
	GuestThreshold int
	// ElevatedPrice цена при превышении порога гостей
	ElevatedPrice float64

	// IncludedHours длительность, включенная в базовую цену (и минимальная)
	IncludedHours int
	// MaxHours максимальная длительность бронирования
	MaxHours int
	// ExtraHourPrice цена каждого часа сверх включенной длительности
	ExtraHourPrice float64

	MinGuests int
	MaxGuests int
}

// Tariffs тарифная сетка усадьбы, цены в BYN
var Tariffs = map[Subtype]Tariff{
	SubtypeBathOnly: {
		Category: CategoryBath, BasePrice: 120, GuestThreshold: 6, ElevatedPrice: 150,
		IncludedHours: 3, MaxHours: 5, ExtraHourPrice: 40, MinGuests: 1, MaxGuests: 8,
	},
	SubtypeTubOnly: {
		Category: CategoryBath, BasePrice: 150, GuestThreshold: 4, ElevatedPrice: 180,
		IncludedHours: 3, MaxHours: 5, ExtraHourPrice: 50, MinGuests: 1, MaxGuests: 6,
	},
	SubtypeTerraceOnly: {
		Category: CategoryBath, BasePrice: 80, GuestThreshold: 0, ElevatedPrice: 0,
		IncludedHours: 3, MaxHours: 5, ExtraHourPrice: 25, MinGuests: 1, MaxGuests: 10,
	},
	SubtypeBathWithTub: {
		Category: CategoryBath, BasePrice: 220, GuestThreshold: 6, ElevatedPrice: 260,
		IncludedHours: 3, MaxHours: 5, ExtraHourPrice: 60, MinGuests: 1, MaxGuests: 8,
	},
	SubtypeSpaStandard: {
		Category: CategorySpa, BasePrice: 200, GuestThreshold: 4, ElevatedPrice: 240,
		IncludedHours: 3, MaxHours: 5, ExtraHourPrice: 60, MinGuests: 1, MaxGuests: 6,
	},
	SubtypeSpaFamily: {
		Category: CategorySpa, BasePrice: 260, GuestThreshold: 6, ElevatedPrice: 300,
		IncludedHours: 3, MaxHours: 5, ExtraHourPrice: 70, MinGuests: 2, MaxGuests: 10,
	},
	SubtypeQuadSingle: {
		Category: CategoryQuad, BasePrice: 90, GuestThreshold: 0, ElevatedPrice: 0,
		IncludedHours: 1, MaxHours: 2, ExtraHourPrice: 60, MinGuests: 1, MaxGuests: 1,
	},
	SubtypeQuadDouble: {
		Category: CategoryQuad, BasePrice: 130, GuestThreshold: 0, ElevatedPrice: 0,
		IncludedHours: 1, MaxHours: 2, ExtraHourPrice: 80, MinGuests: 1, MaxGuests: 2,
	},
}

// AddOnPrices цены дополнительных услуг, BYN за единицу
var AddOnPrices = map[AddOn]float64{
	AddOnGrill:    15,
	AddOnCharcoal: 10,
	AddOnBroom:    8,
	AddOnTowels:   5,
}

// TariffFor возвращает тариф для типа услуги
func TariffFor(subtype Subtype) (Tariff, bool) {
	t, ok := Tariffs[subtype]
	return t, ok
}

// MinBookingMinutes возвращает минимальную длительность бронирования в категории:
// наименьшую включенную длительность среди тарифов категории
// Слоты, в которые не помещается даже минимальное бронирование, не генерируются
func MinBookingMinutes(category Category) int {
	minMinutes := 0
	for _, t := range Tariffs {
		if t.Category != category {
			continue
		}
		included := t.IncludedHours * 60
		if minMinutes == 0 || included < minMinutes {
			minMinutes = included
		}
	}
	if minMinutes == 0 {
		minMinutes = 60
	}
	return minMinutes
}

// ParseSubtype валидирует и возвращает тип услуги
func ParseSubtype(s string) (Subtype, bool) {
	_, ok := Tariffs[Subtype(s)]
	if !ok {
		return "", false
	}
	return Subtype(s), true
}

// ParseAddOn валидирует и возвращает дополнительную услугу
func ParseAddOn(s string) (AddOn, bool) {
	_, ok := AddOnPrices[AddOn(s)]
	if !ok {
		return "", false
	}
	return AddOn(s), true
}

// ParsePaymentMethod валидирует и возвращает способ оплаты
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentERIP, PaymentCash:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}

// PriceBreakdown расценка бронирования
// Инвариант: Total == BasePrice + ExtraHoursPrice + AddOnsPrice - DiscountAmount
type PriceBreakdown struct {
	BasePrice       float64
	ExtraHoursPrice float64
	AddOnsPrice     float64
	DiscountPercent int
	DiscountAmount  float64
	Total           float64
}

// Subtotal возвращает сумму до применения скидки
func (p *PriceBreakdown) Subtotal() float64 {
	return p.BasePrice + p.ExtraHoursPrice + p.AddOnsPrice
}
