package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/elibrary/loan-service/loan/internal/model"
)

func (r *repository) CurrentLoans(ctx context.Context, userID int) ([]model.OpenLoanBook, error) {
	query, args, err := qb.Select("b.id", "b.title", "b.author", "b.description", "b.category", "b.copies", "b.copies_available", "c.due_date").
		From(checkoutTableName + " c").
		Join(fmt.Sprintf("%s b on b.id = c.book_id", bookTableName)).
		Where(sq.Eq{"c.user_id": userID}).
		Where("c.returned_date is null").
		OrderBy("c.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.OpenLoanBook])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return loans, nil
}

func (r *repository) LoanCount(ctx context.Context, userID int) (int64, error) {
	q := `
	select count(*) from checkout
	where user_id = $1
`
	var count int64
	if err := r.db.QueryRow(ctx, q, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) TotalCheckouts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `select count(*) from checkout`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CheckoutsPerUser counts historical loans per user; users with no loans show
// up with a zero count.
func (r *repository) CheckoutsPerUser(ctx context.Context) ([]model.CheckoutPerUser, error) {
	q := `
	select u.user_uid, u.email, count(c.id) as cnt
	from users u
	left join checkout c on c.user_id = u.id
	group by u.user_uid, u.email
	order by u.email
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CheckoutPerUser])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return stats, nil
}

func (r *repository) ListLoans(ctx context.Context, page, size int) ([]model.LoanRow, int, error) {
	q := qb.Select("c.id", "c.loan_uid", "u.user_uid", "u.name as user_name", "u.email",
		"c.book_id", "b.title", "b.author",
		"c.checkout_date", "c.due_date", "c.returned_date", "c.renewal_count").
		From(checkoutTableName + " c").
		Join(fmt.Sprintf("%s u on u.id = c.user_id", usersTableName)).
		Join(fmt.Sprintf("%s b on b.id = c.book_id", bookTableName)).
		OrderBy("c.id")

	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.LoanRow])
	if err != nil {
		return nil, 0, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `select count(*) from checkout`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
