package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elibrary/loan-service/loan/internal/errs"
	"github.com/elibrary/loan-service/loan/internal/model"
)

type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByUid(ctx context.Context, userUid string) (model.User, error)
	GetBook(ctx context.Context, bookID int) (model.Book, error)
	UpsertBook(ctx context.Context, book model.Book) error

	GetOpenLoan(ctx context.Context, userID, bookID int) (model.Loan, error)
	CreateLoan(ctx context.Context, userID, bookID int, checkoutDate, dueDate time.Time) (model.Loan, error)
	ReturnLoan(ctx context.Context, userID, bookID int, returnedDate time.Time) (model.Loan, error)
	RenewLoan(ctx context.Context, loanID int, dueDate time.Time, seenRenewals int) (model.Loan, error)

	CurrentLoans(ctx context.Context, userID int) ([]model.OpenLoanBook, error)
	LoanCount(ctx context.Context, userID int) (int64, error)
	TotalCheckouts(ctx context.Context) (int64, error)
	CheckoutsPerUser(ctx context.Context) ([]model.CheckoutPerUser, error)
	ListLoans(ctx context.Context, page, size int) ([]model.LoanRow, int, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName    = `users`
	bookTableName     = `book`
	checkoutTableName = `checkout`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var loanColumns = []string{"id", "loan_uid", "user_id", "book_id", "checkout_date", "due_date", "returned_date", "renewal_count"}

const loanReturning = `id, loan_uid, user_id, book_id, checkout_date, due_date, returned_date, renewal_count`

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// reserveCopy atomically claims one available copy. The guarded single-row
// update keeps 0 <= copies_available without locking unrelated books.
func reserveCopy(ctx context.Context, db execer, bookID int) error {
	q := `
update book
    set copies_available = copies_available - 1
where id = @book_id and copies_available > 0`
	ct, err := db.Exec(ctx, q, pgx.NamedArgs{"book_id": bookID})
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNoCopiesAvailable
	}
	return nil
}

// releaseCopy returns one copy, capped at the total. Zero rows affected means
// a double release upstream; the count is left as-is.
func releaseCopy(ctx context.Context, db execer, bookID int) error {
	q := `
update book
    set copies_available = copies_available + 1
where id = @book_id and copies_available < copies`
	ct, err := db.Exec(ctx, q, pgx.NamedArgs{"book_id": bookID})
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrOverRelease
	}
	return nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"email": email})
}

func (r *repository) GetUserByUid(ctx context.Context, userUid string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"user_uid": userUid})
}

func (r *repository) getUser(ctx context.Context, where sq.Eq) (model.User, error) {
	query, args, err := qb.Select("id", "user_uid", "name", "email", "role").
		From(usersTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.User{}, err
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) GetBook(ctx context.Context, bookID int) (model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "description", "category", "copies", "copies_available").
		From(bookTableName).
		Where(sq.Eq{"id": bookID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, err
	}
	defer rows.Close()

	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

// UpsertBook applies a catalog update. A change in the total is carried over
// to copies_available by the same delta, clamped into [0, copies], so the
// counter invariant survives catalog edits.
func (r *repository) UpsertBook(ctx context.Context, book model.Book) error {
	q := `
insert into book (id, title, author, description, category, copies, copies_available)
values (@id, @title, @author, @description, @category, @copies, @copies)
on conflict (id) do update
    set title            = excluded.title,
        author           = excluded.author,
        description      = excluded.description,
        category         = excluded.category,
        copies           = excluded.copies,
        copies_available = least(excluded.copies,
                                 greatest(0, book.copies_available + excluded.copies - book.copies))`
	args := pgx.NamedArgs{
		"id":          book.ID,
		"title":       book.Title,
		"author":      book.Author,
		"description": book.Description,
		"category":    book.Category,
		"copies":      book.Copies,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return errors.Wrap(err, "UpsertBook")
	}
	return nil
}

func (r *repository) GetOpenLoan(ctx context.Context, userID, bookID int) (model.Loan, error) {
	query, args, err := qb.Select(loanColumns...).
		From(checkoutTableName).
		Where(sq.Eq{"user_id": userID, "book_id": bookID}).
		Where("returned_date is null").
		Limit(1).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Loan{}, err
	}
	defer rows.Close()

	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, errs.ErrNoOpenLoan
		}
		return model.Loan{}, err
	}
	return loan, nil
}

// CreateLoan reserves a copy and inserts the loan record in one transaction.
// The reserve comes first: running out of copies never leaves a record, and a
// lost insert race rolls the reservation back with the transaction.
func (r *repository) CreateLoan(ctx context.Context, userID, bookID int, checkoutDate, dueDate time.Time) (model.Loan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Loan{}, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := reserveCopy(ctx, tx, bookID); err != nil {
		return model.Loan{}, err
	}

	query, args, err := qb.Insert(checkoutTableName).
		Columns("loan_uid", "user_id", "book_id", "checkout_date", "due_date", "renewal_count").
		Values(uuid.New(), userID, bookID, checkoutDate, dueDate, 0).
		Suffix("returning " + loanReturning).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return model.Loan{}, err
	}
	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Loan{}, errs.ErrAlreadyCheckedOut
		}
		r.log.Error("CreateLoan", zap.String("q", query), zap.Any("args", args))
		return model.Loan{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

// ReturnLoan marks the open loan returned and releases its copy in one
// transaction. Terminal records are never touched: the update matches only
// returned_date is null, so a racing double return loses cleanly.
func (r *repository) ReturnLoan(ctx context.Context, userID, bookID int, returnedDate time.Time) (model.Loan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Loan{}, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	q := `
update checkout
    set returned_date = @returned_date
where user_id = @user_id and book_id = @book_id and returned_date is null
returning ` + loanReturning
	args := pgx.NamedArgs{
		"returned_date": returnedDate,
		"user_id":       userID,
		"book_id":       bookID,
	}
	rows, err := tx.Query(ctx, q, args)
	if err != nil {
		return model.Loan{}, err
	}
	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, r.classifyMissingOpenLoan(ctx, userID, bookID)
		}
		return model.Loan{}, err
	}

	if err := releaseCopy(ctx, tx, bookID); err != nil {
		if errors.Is(err, errs.ErrOverRelease) {
			r.log.Error("copy release exceeds total, counter bug upstream",
				zap.Int("bookID", bookID), zap.Int("loanID", loan.ID))
		}
		return model.Loan{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) classifyMissingOpenLoan(ctx context.Context, userID, bookID int) error {
	q := `
select exists(
	select 1 from checkout
	where user_id = $1 and book_id = $2 and returned_date is not null
)`
	var returned bool
	if err := r.db.QueryRow(ctx, q, userID, bookID).Scan(&returned); err != nil {
		return err
	}
	if returned {
		return errs.ErrAlreadyReturned
	}
	return errs.ErrNoOpenLoan
}

// RenewLoan is a compare-and-update keyed on the renewal count the caller
// observed. Zero rows means the record moved underneath and yields
// errs.ErrConflict for the caller to retry.
func (r *repository) RenewLoan(ctx context.Context, loanID int, dueDate time.Time, seenRenewals int) (model.Loan, error) {
	q := `
update checkout
    set due_date = @due_date, renewal_count = renewal_count + 1
where id = @id and returned_date is null and renewal_count = @seen_renewals
returning ` + loanReturning
	args := pgx.NamedArgs{
		"due_date":      dueDate,
		"id":            loanID,
		"seen_renewals": seenRenewals,
	}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return model.Loan{}, err
	}
	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, errs.ErrConflict
		}
		return model.Loan{}, err
	}
	return loan, nil
}
