package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/segyhp/rental-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

// bookRepository serves both catalogue lookups and stock updates
type bookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) BookStore {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetByExternalID(ctx context.Context, externalID int64) (*domain.Book, error) {
	query := `
		SELECT external_id, title, price, stock_quantity, available_quantity
		FROM books
		WHERE external_id = $1
	`

	var book domain.Book
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &book, query, externalID); err != nil {
		return nil, err
	}

	return &book, nil
}

func (r *bookRepository) UpdateStock(ctx context.Context, externalID int64, newQuantity int) error {
	query := `
		UPDATE books
		SET available_quantity = $2
		WHERE external_id = $1
	`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, externalID, newQuantity)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
