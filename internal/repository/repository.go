package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/spend-forecast/internal/models"
)

// Repository provides read-only access to stored transactions
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListSpendingHistory returns the user's expenses (negative amounts) across all
// of their accounts, oldest first
func (r *Repository) ListSpendingHistory(ctx context.Context, userID int64) ([]models.TransactionRecord, error) {
	query := `
		SELECT t.transaction_date, t.amount::text, c.name
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE a.user_id = $1 AND t.amount < 0
		ORDER BY t.transaction_date ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var history []models.TransactionRecord
	for rows.Next() {
		var (
			date     time.Time
			amount   string
			category sql.NullString
		)
		if err := rows.Scan(&date, &amount, &category); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		history = append(history, models.TransactionRecord{
			TransactionDate: date.Format(models.DateLayout),
			Amount:          models.RawAmount(amount),
			Category:        category.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return history, nil
}
