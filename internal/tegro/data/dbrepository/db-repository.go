package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go-tegro/internal/tegro/data"
	"go-tegro/pkg/logging"
	"go.uber.org/zap"
)

const (
	invalidOrderID = -1

	ordersTable = "tegro_orders"

	pgUniqueViolation   = "23505"
	pgRestrictViolation = "23001"
)

var orderColumns = []string{
	"id",
	"shop_id",
	"order_id",
	"payment_id",
	"date_created",
	"date_payed",
	"payment_system",
	"currency",
	"currency_id",
	"amount",
	"fee",
	"status",
	"test_order",
}

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

// DBRepository stores orders and their child rows. It has no delete
// operations; the schema rejects deletes as well.
type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/insert_order.sql
var insertOrderQuery string

func (db *DBRepository) InsertOrder(ctx context.Context, order *data.Order) (orderID int64, err error) {
	err = db.storage.QueryValue(
		ctx,
		insertOrderQuery,
		[]any{
			order.ShopID,
			order.Reference,
			order.CreatedAt,
			order.PaymentSystemID,
			order.Currency,
			order.Amount,
			int(order.Status),
			order.TestOrder,
		},
		[]any{&orderID},
	)
	if err != nil {
		return invalidOrderID, handleSQLError(err)
	}
	return orderID, nil
}

//go:embed sql/insert_order_field.sql
var insertOrderFieldQuery string

func (db *DBRepository) InsertOrderField(ctx context.Context, field data.OrderField) error {
	_, err := db.storage.Exec(ctx, insertOrderFieldQuery, field.OrderID, field.Name, field.Value)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/insert_order_receipt.sql
var insertOrderReceiptQuery string

func (db *DBRepository) InsertOrderReceiptItem(ctx context.Context, item data.OrderReceiptItem) error {
	_, err := db.storage.Exec(ctx, insertOrderReceiptQuery, item.OrderID, item.Name, item.Count, item.Price)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/update_order_created.sql
var updateOrderCreatedQuery string

// UpdateOrderStatusAndRemoteID sets status and, if the order has none yet,
// the remote identifier. A nil remoteID leaves the identifier untouched.
func (db *DBRepository) UpdateOrderStatusAndRemoteID(
	ctx context.Context,
	orderID int64,
	status data.Status,
	remoteID *int64,
) error {
	tag, err := db.storage.Exec(ctx, updateOrderCreatedQuery, orderID, int(status), remoteID)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrOrderNotFound
	}
	return nil
}

//go:embed sql/update_order_status.sql
var updateOrderStatusQuery string

func (db *DBRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status data.Status) error {
	tag, err := db.storage.Exec(ctx, updateOrderStatusQuery, orderID, int(status))
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrOrderNotFound
	}
	return nil
}

//go:embed sql/update_order_check.sql
var updateOrderCheckQuery string

// ApplyOrderCheck stores the result of an order status check only while the
// order still has the expected status. applied is false when the status has
// changed since the check was scheduled, e.g. by a payment notification.
func (db *DBRepository) ApplyOrderCheck(
	ctx context.Context,
	orderID int64,
	expected data.Status,
	check data.OrderCheck,
) (applied bool, err error) {
	tag, err := db.storage.Exec(
		ctx,
		updateOrderCheckQuery,
		orderID,
		int(check.Status),
		check.CurrencyID,
		check.Fee,
		check.PaidAt,
		int(expected),
	)
	if err != nil {
		return false, handleSQLError(err)
	}
	return tag.RowsAffected() > 0, nil
}

//go:embed sql/select_order_by_payment_id.sql
var selectOrderByPaymentIDQuery string

func (db *DBRepository) FindOrderByShopAndReference(
	ctx context.Context,
	shopID string,
	reference string,
) (data.Order, error) {
	return db.findSingleOrder(ctx, selectOrderByPaymentIDQuery, shopID, reference)
}

//go:embed sql/select_order_by_remote_id.sql
var selectOrderByRemoteIDQuery string

func (db *DBRepository) FindOrderByShopAndRemoteID(
	ctx context.Context,
	shopID string,
	remoteID int64,
) (data.Order, error) {
	return db.findSingleOrder(ctx, selectOrderByRemoteIDQuery, shopID, remoteID)
}

// findSingleOrder returns data.ErrOrderNotFound for no match and
// data.ErrAmbiguousOrder when the key is shared by several orders.
func (db *DBRepository) findSingleOrder(ctx context.Context, query string, args ...any) (data.Order, error) {
	var (
		order   data.Order
		matches int64
	)
	err := db.storage.QueryValue(ctx, query, args, append(orderDest(&order), &matches))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return data.Order{}, data.ErrOrderNotFound
		}
		return data.Order{}, handleSQLError(err)
	}
	if matches > 1 {
		db.logger.WarnCtx(ctx, "ambiguous order lookup", zap.Any("key", args), zap.Int64("matches", matches))
		return data.Order{}, data.ErrAmbiguousOrder
	}
	return order, nil
}

// GetOrders lists orders of shopID already known to the payment service,
// oldest first, optionally restricted to statuses.
func (db *DBRepository) GetOrders(
	ctx context.Context,
	shopID string,
	limit int,
	statuses ...data.Status,
) ([]data.Order, error) {
	builder := sq.Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"shop_id": shopID}).
		Where(sq.NotEq{"order_id": nil}).
		OrderBy("date_created", "id").
		PlaceholderFormat(sq.Dollar)
	if len(statuses) > 0 {
		values := make([]int, len(statuses))
		for i, status := range statuses {
			values[i] = int(status)
		}
		builder = builder.Where(sq.Eq{"status": values})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build orders query: %w", err)
	}

	rows, err := db.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Order, 0)
	for rows.Next() {
		var order data.Order
		if err := rows.Scan(orderDest(&order)...); err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

// orderDest lists scan targets in orderColumns order.
func orderDest(order *data.Order) []any {
	return []any{
		&order.ID,
		&order.ShopID,
		&order.RemoteID,
		&order.Reference,
		&order.CreatedAt,
		&order.PaidAt,
		&order.PaymentSystemID,
		&order.Currency,
		&order.CurrencyID,
		&order.Amount,
		&order.Fee,
		&order.Status,
		&order.TestOrder,
	}
}

func handleSQLError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", data.ErrUniqueConstraintViolation, pgErr.ConstraintName)
		case pgRestrictViolation:
			return data.ErrDeletionForbidden
		}
	}
	return err
}
