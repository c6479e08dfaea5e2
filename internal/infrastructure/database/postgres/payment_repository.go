package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"emi-service/internal/domain/customer"
	"emi-service/internal/domain/payment"
	"emi-service/internal/infrastructure/monitoring"
	"emi-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

type PaymentRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ payment.Repository = (*PaymentRepository)(nil)

func NewPaymentRepository(db DBPool, logger *slog.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger.With("component", "PaymentRepository")}
}

func (r *PaymentRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *PaymentRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Commit(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *PaymentRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

// FindCustomerForUpdate locks the customer row for the rest of the
// transaction so a concurrent payment on the same account waits here instead
// of reading a stale due balance.
func (r *PaymentRepository) FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*customer.Customer, error) {
	query := `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE account_number = $1
        FOR UPDATE`

	var cust customer.Customer
	err := tx.QueryRow(ctx, query, accountNumber).Scan(
		&cust.ID,
		&cust.AccountNumber,
		&cust.CustomerName,
		&cust.IssueDate,
		&cust.InterestRate,
		&cust.TenureMonths,
		&cust.EMIDue,
		&cust.TotalLoanAmount,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found for update", "account_number", accountNumber)
			return nil, customer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to lock customer row", "account_number", accountNumber, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &cust, nil
}

func (r *PaymentRepository) InsertPaymentInTx(ctx context.Context, tx pgx.Tx, p *payment.Payment) error {
	query := `
        INSERT INTO payments (customer_id, account_number, payment_date, payment_amount, status, created_at)
        VALUES ($1, $2, NOW(), $3, $4, NOW())
        RETURNING id, payment_date, created_at`

	err := tx.QueryRow(ctx, query,
		p.CustomerID,
		p.AccountNumber,
		p.PaymentAmount,
		p.Status,
	).Scan(
		&p.ID,
		&p.PaymentDate,
		&p.CreatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		r.logger.ErrorContext(ctx, "Failed to insert payment", slog.Any("error", err))
		return translatedErr
	}

	r.logger.InfoContext(ctx, "Payment inserted in DB", "payment_id", p.ID)
	return nil
}

func (r *PaymentRepository) UpdateCustomerDueInTx(ctx context.Context, tx pgx.Tx, customerID int64, newDue decimal.Decimal) error {
	query := `
        UPDATE customers
        SET emi_due = $1, updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := tx.Exec(ctx, query, newDue, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update customer due balance", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update due balance: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Due balance update affected zero rows", "customer_id", customerID)
		return apperrors.ErrNotFound
	}
	return nil
}

const paymentJoinColumns = `p.id, p.customer_id, p.account_number, p.payment_date, p.payment_amount, p.status, p.created_at, c.customer_name`

func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*payment.PaymentWithCustomer, error) {
	query := `
        SELECT ` + paymentJoinColumns + `
        FROM payments p
        JOIN customers c ON c.id = p.customer_id
        ORDER BY p.payment_date DESC
        LIMIT $1 OFFSET $2`

	status := "success"
	startTime := time.Now()

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		monitoring.RecordDBQuery("ListPayments", "error", time.Since(startTime))
		r.logger.ErrorContext(ctx, "Failed to query payments", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments, err := scanPaymentRows(rows)
	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("ListPayments", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to scan payment rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM payments`

	var total int64
	err := r.db.QueryRow(ctx, query).Scan(&total)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count payments", "error", err)
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return total, nil
}

// ListByAccountNumber intentionally does not check the account exists; an
// unknown account simply yields no rows.
func (r *PaymentRepository) ListByAccountNumber(ctx context.Context, accountNumber string) ([]*payment.PaymentWithCustomer, error) {
	query := `
        SELECT ` + paymentJoinColumns + `
        FROM payments p
        JOIN customers c ON c.id = p.customer_id
        WHERE p.account_number = $1
        ORDER BY p.payment_date DESC`

	rows, err := r.db.Query(ctx, query, accountNumber)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query payment history", "account_number", accountNumber, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments, err := scanPaymentRows(rows)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to scan payment history rows", "account_number", accountNumber, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func scanPaymentRows(rows pgx.Rows) ([]*payment.PaymentWithCustomer, error) {
	payments := make([]*payment.PaymentWithCustomer, 0)
	for rows.Next() {
		var p payment.PaymentWithCustomer
		err := rows.Scan(
			&p.ID,
			&p.CustomerID,
			&p.AccountNumber,
			&p.PaymentDate,
			&p.PaymentAmount,
			&p.Status,
			&p.CreatedAt,
			&p.CustomerName,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" {
			contextLogger.Warn("Database foreign key violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
