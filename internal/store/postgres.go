package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dasakash26/Banking-Simulation/configs"
	"github.com/dasakash26/Banking-Simulation/internal/logger"
	"github.com/dasakash26/Banking-Simulation/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

func NewDB() {
	dsn := configs.AppConfig.DB.DSN
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db
	logger.Log.Info("connected to the database")
}

func DBMigrate() {
	DB.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Account{},
		&models.Loan{},
		&models.Investment{},
		&models.Transaction{},
	)
	logger.Log.Info("migrations loaded")
}

// GormStore implements Store on Postgres. Inside RunAtomic, account and loan
// reads take SELECT ... FOR UPDATE locks so concurrent mutators of the same
// row serialize.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	var acct models.Account
	if err := s.query(ctx).First(&acct, id).Error; err != nil {
		return nil, translate(err)
	}
	return &acct, nil
}

func (s *GormStore) GetAccountByNumber(ctx context.Context, number string) (*models.Account, error) {
	var acct models.Account
	if err := s.query(ctx).Where("account_number = ?", number).First(&acct).Error; err != nil {
		return nil, translate(err)
	}
	return &acct, nil
}

func (s *GormStore) UpdateAccountBalance(ctx context.Context, id uint, balance int64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(txn).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) ListUsers(ctx context.Context, f UserFilter) ([]models.User, error) {
	q := s.db.WithContext(ctx).
		Preload("Accounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Loans")
	if f.EmploymentType != "" {
		q = q.Where("employment_type = ?", f.EmploymentType)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *GormStore) GetLoan(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := s.query(ctx).First(&loan, id).Error; err != nil {
		return nil, translate(err)
	}
	return &loan, nil
}

func (s *GormStore) UpdateLoanRemaining(ctx context.Context, id uint, remaining int64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ?", id).
		Update("remaining_amount", remaining)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) RunAtomic(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, inTx: true})
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// translate maps driver errors onto the store's taxonomy. Errors already in
// the taxonomy pass through unchanged so RunAtomic does not re-wrap them.
func translate(err error) error {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicateReference),
		errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateReference
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
