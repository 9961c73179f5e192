package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/dbmetrics"
	"github.com/zarechye/booking-service/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"resource_id",
	"category",
	"subtype",
	"booking_date",
	"start_time",
	"duration_minutes",
	"guest_count",
	"add_ons",
	"base_price",
	"extra_hours_price",
	"add_ons_price",
	"discount_percent",
	"discount_amount",
	"total_price",
	"customer_name",
	"customer_phone",
	"customer_external_id",
	"status",
	"payment_method",
	"cancellation_reason",
	"cancelled_at",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её,
// проверка доступности интервала и вставка обязаны выполняться в одной
// сериализуемой транзакции, иначе возможна гонка между двумя заявками
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"resource_id",
			"category",
			"subtype",
			"booking_date",
			"start_time",
			"duration_minutes",
			"guest_count",
			"add_ons",
			"base_price",
			"extra_hours_price",
			"add_ons_price",
			"discount_percent",
			"discount_amount",
			"total_price",
			"customer_name",
			"customer_phone",
			"customer_external_id",
			"status",
			"created_by",
		).
		Values(
			booking.ResourceID,
			booking.Category,
			booking.Subtype,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.GuestCount,
			addOnsToArray(booking.AddOns),
			booking.Price.BasePrice,
			booking.Price.ExtraHoursPrice,
			booking.Price.AddOnsPrice,
			booking.Price.DiscountPercent,
			booking.Price.DiscountAmount,
			booking.Price.Total,
			booking.Customer.Name,
			booking.Customer.Phone,
			booking.Customer.ExternalID,
			booking.Status,
			booking.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: переходы статусов не должны гоняться
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по ресурсу, категории, периоду и статусу.
// По умолчанию отмененные и истекшие бронирования исключаются, они
// освобождают интервал и не участвуют в подсчете доступности.
//
// Внутри транзакции при выборке по конкретному ресурсу и дате добавляется
// FOR UPDATE, чтобы удерживать строки соперничающих бронирований
// до конца своей транзакции
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeReleased {
		releasedStatusStrings := make([]string, len(domain.ReleasedStatuses))
		for i, s := range domain.ReleasedStatuses {
			releasedStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": releasedStatusStrings})
	}

	sameDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if sameDate {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("resource_id ASC, start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.ResourceID != nil && sameDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// Легальность перехода проверяет сервис, репозиторий выполняет запись
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SetPaymentMethod фиксирует способ оплаты бронирования
func (r *Repository) SetPaymentMethod(ctx context.Context, id int64, method domain.PaymentMethod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_method", method).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentMethod - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentMethod - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentMethod - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdatePrice перезаписывает расценку бронирования
// Используется при редактировании скидки владельцем; расценка пишется целиком,
// чтобы инвариант Total = Subtotal - DiscountAmount не мог разъехаться
func (r *Repository) UpdatePrice(ctx context.Context, id int64, price domain.PriceBreakdown) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("base_price", price.BasePrice).
		Set("extra_hours_price", price.ExtraHoursPrice).
		Set("add_ons_price", price.AddOnsPrice).
		Set("discount_percent", price.DiscountPercent).
		Set("discount_amount", price.DiscountAmount).
		Set("total_price", price.Total).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePrice - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePrice - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePrice - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ExpireStale переводит неподтвержденные заявки, созданные раньше createdBefore,
// в статус expired. Возвращает количество затронутых бронирований.
// Вызывается внешним планировщиком через internal endpoint
func (r *Repository) ExpireStale(ctx context.Context, createdBefore time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPendingCall}).
		Where(squirrel.Lt{"created_at": createdBefore}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var addOns pq.StringArray
	var paymentMethod sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ResourceID,
		&booking.Category,
		&booking.Subtype,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.GuestCount,
		&addOns,
		&booking.Price.BasePrice,
		&booking.Price.ExtraHoursPrice,
		&booking.Price.AddOnsPrice,
		&booking.Price.DiscountPercent,
		&booking.Price.DiscountAmount,
		&booking.Price.Total,
		&booking.Customer.Name,
		&booking.Customer.Phone,
		&booking.Customer.ExternalID,
		&booking.Status,
		&paymentMethod,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.AddOns = addOnsFromArray(addOns)
	if paymentMethod.Valid {
		method := domain.PaymentMethod(paymentMethod.String)
		booking.PaymentMethod = &method
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func addOnsToArray(addOns []domain.AddOn) pq.StringArray {
	arr := make(pq.StringArray, len(addOns))
	for i, a := range addOns {
		arr[i] = string(a)
	}
	return arr
}

func addOnsFromArray(arr pq.StringArray) []domain.AddOn {
	addOns := make([]domain.AddOn, 0, len(arr))
	for _, s := range arr {
		addOns = append(addOns, domain.AddOn(s))
	}
	return addOns
}
