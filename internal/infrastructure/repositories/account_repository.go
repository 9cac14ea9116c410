package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the Postgres SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

// DefaultOrdering is applied to listings and searches without an explicit order
const DefaultOrdering = "-date_updated"

// orderings maps accepted ordering keys to SQL
var orderings = map[string]string{
	"email":         "email ASC",
	"-email":        "email DESC",
	"first_name":    "first_name ASC",
	"-first_name":   "first_name DESC",
	"last_name":     "last_name ASC",
	"-last_name":    "last_name DESC",
	"date_joined":   "date_joined ASC",
	"-date_joined":  "date_joined DESC",
	"date_updated":  "date_updated ASC",
	"-date_updated": "date_updated DESC",
}

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db  *gorm.DB
	now domain.Clock
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID           string     `gorm:"primaryKey;size:36"`
	FirstName    string     `gorm:"size:50;not null"`
	LastName     string     `gorm:"size:50;not null"`
	Email        string     `gorm:"uniqueIndex;size:254;not null"`
	PhoneNumber  *string    `gorm:"uniqueIndex;size:20"`
	Sex          string     `gorm:"size:10"`
	Role         string     `gorm:"index;size:8;not null"`
	DOB          *time.Time `gorm:"column:dob;type:date"`
	Address      string     `gorm:"size:255"`
	ProfilePhoto *string    `gorm:"size:255"`
	PasswordHash string     `gorm:"column:password;size:128;not null"`
	IsActive     bool       `gorm:"index"`
	IsVerified   bool       `gorm:"index"`
	IsStaff      bool       `gorm:"index"`
	IsSuperuser  bool
	LastLogin    *time.Time
	DateJoined   time.Time `gorm:"index;not null"`
	DateUpdated  time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository. A nil clock uses time.Now.
func NewAccountRepository(db *gorm.DB, clock domain.Clock) domain.AccountRepository {
	if clock == nil {
		clock = time.Now
	}
	return &AccountRepositoryImpl{db: db, now: clock}
}

// Create implements domain.AccountRepository. DateJoined and DateUpdated are
// stamped here and nowhere else on insert.
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := r.now().UTC()
	account.DateJoined = now
	account.DateUpdated = now

	if err := r.db.WithContext(ctx).Create(r.domainToDB(account)).Error; err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		return err
	}
	return nil
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.findOne(ctx, "id = ?", id.String())
}

// FindByEmail implements domain.AccountRepository. The email is matched as given;
// callers normalize first.
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *AccountRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount)
}

// List implements domain.AccountRepository
func (r *AccountRepositoryImpl) List(ctx context.Context) ([]*domain.Account, error) {
	var rows []DBAccount
	if err := r.db.WithContext(ctx).Order(orderings[DefaultOrdering]).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.rowsToDomain(rows)
}

// likeEscaper quotes LIKE wildcards so search terms match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search implements domain.AccountRepository
func (r *AccountRepositoryImpl) Search(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	q := r.db.WithContext(ctx).Model(&DBAccount{})

	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		q = q.Where(`(LOWER(email) LIKE ? ESCAPE '\' OR LOWER(first_name) LIKE ? ESCAPE '\')`, like, like)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsVerified != nil {
		q = q.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.IsStaff != nil {
		q = q.Where("is_staff = ?", *filter.IsStaff)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", string(filter.Role))
	}
	if since, ok := filter.DateJoined.Since(r.now().UTC()); ok {
		q = q.Where("date_joined >= ?", since)
	}

	order, ok := orderings[filter.Ordering]
	if !ok {
		order = orderings[DefaultOrdering]
	}

	var rows []DBAccount
	if err := q.Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.rowsToDomain(rows)
}

// Update implements domain.AccountRepository. Every field except id and
// date_joined is written; DateUpdated is refreshed.
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	account.DateUpdated = r.now().UTC()

	dbAccount := r.domainToDB(account)
	res := r.db.WithContext(ctx).
		Model(&DBAccount{ID: dbAccount.ID}).
		Select("*").
		Omit("id", "date_joined").
		Updates(dbAccount)
	if res.Error != nil {
		if conflict := asConflict(res.Error); conflict != nil {
			return conflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// TouchLastLogin implements domain.AccountRepository. It is not a profile
// mutation and leaves date_updated alone.
func (r *AccountRepositoryImpl) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBAccount{}).
		Where("id = ?", id.String()).
		UpdateColumn("last_login", at.UTC()).Error
}

func (r *AccountRepositoryImpl) rowsToDomain(rows []DBAccount) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(rows))
	for i := range rows {
		acc, err := r.dbToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// asConflict maps a unique-index violation to a domain conflict, or returns nil
func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return nil
		}
		return &domain.ConflictError{Field: conflictField(pgErr.ConstraintName + " " + pgErr.Detail)}
	}
	msg := err.Error()
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "UNIQUE constraint failed") {
		return &domain.ConflictError{Field: conflictField(msg)}
	}
	return nil
}

func conflictField(detail string) string {
	if strings.Contains(detail, "phone") {
		return "phone_number"
	}
	return "email"
}

// domainToDB converts domain account to database account
func (r *AccountRepositoryImpl) domainToDB(acc *domain.Account) *DBAccount {
	var dob *time.Time
	if acc.DOB != nil {
		d := domain.Date(*acc.DOB)
		dob = &d
	}
	return &DBAccount{
		ID:           acc.ID.String(),
		FirstName:    acc.FirstName,
		LastName:     acc.LastName,
		Email:        acc.Email,
		PhoneNumber:  nullable(acc.PhoneNumber),
		Sex:          string(acc.Sex),
		Role:         string(acc.Role),
		DOB:          dob,
		Address:      acc.Address,
		ProfilePhoto: nullable(acc.ProfilePhoto),
		PasswordHash: acc.PasswordHash,
		IsActive:     acc.IsActive,
		IsVerified:   acc.IsVerified,
		IsStaff:      acc.IsStaff,
		IsSuperuser:  acc.IsSuperuser,
		LastLogin:    acc.LastLogin,
		DateJoined:   acc.DateJoined,
		DateUpdated:  acc.DateUpdated,
	}
}

// dbToDomain converts database account to domain account
func (r *AccountRepositoryImpl) dbToDomain(row *DBAccount) (*domain.Account, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt account id %q: %w", row.ID, err)
	}
	var dob *time.Time
	if row.DOB != nil {
		d := domain.Date(*row.DOB)
		dob = &d
	}
	return &domain.Account{
		ID:           id,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		PhoneNumber:  deref(row.PhoneNumber),
		Sex:          domain.Sex(row.Sex),
		DOB:          dob,
		Address:      row.Address,
		ProfilePhoto: deref(row.ProfilePhoto),
		Credentials: domain.Credentials{
			PasswordHash: row.PasswordHash,
			IsActive:     row.IsActive,
			IsVerified:   row.IsVerified,
			LastLogin:    row.LastLogin,
		},
		Permissions: domain.Permissions{
			Role:        domain.Role(row.Role),
			IsStaff:     row.IsStaff,
			IsSuperuser: row.IsSuperuser,
		},
		DateJoined:  row.DateJoined,
		DateUpdated: row.DateUpdated,
	}, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
