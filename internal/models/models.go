package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// All monetary amounts (balances, incomes, EMIs, transaction amounts) are
// stored as int64 minor currency units (paise).

type EmploymentType string

const (
	EmploymentEmployed   EmploymentType = "EMPLOYED"
	EmploymentBusiness   EmploymentType = "BUSINESS"
	EmploymentUnemployed EmploymentType = "UNEMPLOYED"
)

type AccountType string

const (
	AccountSavings AccountType = "SAVINGS"
	AccountCurrent AccountType = "CURRENT"
	AccountSalary  AccountType = "SALARY"
	AccountDemat   AccountType = "DEMAT"
	AccountNRI     AccountType = "NRI"
	AccountPPF     AccountType = "PPF"
	AccountFD      AccountType = "FD"
	AccountRD      AccountType = "RD"
)

type TransactionMode string

const (
	ModeUPI             TransactionMode = "UPI"
	ModeNEFT            TransactionMode = "NEFT"
	ModeIMPS            TransactionMode = "IMPS"
	ModeCash            TransactionMode = "CASH"
	ModeCheque          TransactionMode = "CHEQUE"
	ModeATM             TransactionMode = "ATM"
	ModePOS             TransactionMode = "POS"
	ModeInternetBanking TransactionMode = "INTERNET_BANKING"
)

type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

type LoanType string

const (
	LoanHome      LoanType = "HOME"
	LoanCar       LoanType = "CAR"
	LoanPersonal  LoanType = "PERSONAL"
	LoanEducation LoanType = "EDUCATION"
	LoanBusiness  LoanType = "BUSINESS"
)

type InvestmentType string

const (
	InvestmentFD         InvestmentType = "FD"
	InvestmentMutualFund InvestmentType = "MUTUAL_FUND"
	InvestmentStocks     InvestmentType = "STOCKS"
	InvestmentBonds      InvestmentType = "BONDS"
	InvestmentGold       InvestmentType = "GOLD"
)

type User struct {
	gorm.Model
	PAN            string         `gorm:"uniqueIndex;size:10;not null" json:"pan"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Mobile         string         `gorm:"size:15" json:"mobile"`
	Email          string         `gorm:"size:255" json:"email"`
	DOB            *time.Time     `json:"dob,omitempty"`
	EmploymentType EmploymentType `gorm:"size:20;index;not null" json:"employmentType"`
	Income         int64          `gorm:"not null;default:0" json:"income"`
	KYCComplete    bool           `gorm:"not null;default:false" json:"kycComplete"`

	Accounts    []Account    `json:"accounts,omitempty"`
	Loans       []Loan       `json:"loans,omitempty"`
	Investments []Investment `json:"investments,omitempty"`
}

type Branch struct {
	gorm.Model
	Code     string `gorm:"uniqueIndex;size:10;not null" json:"code"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Address  string `gorm:"size:255" json:"address"`
	City     string `gorm:"size:50" json:"city"`
	State    string `gorm:"size:50" json:"state"`
	IFSCCode string `gorm:"size:11;not null" json:"ifscCode"`
}

type Account struct {
	gorm.Model
	UserID          uint        `gorm:"index;not null" json:"userId"`
	AccountNumber   string      `gorm:"uniqueIndex;size:20;not null" json:"accountNumber"`
	Type            AccountType `gorm:"size:10;not null" json:"type"`
	IFSCCode        string      `gorm:"size:11" json:"ifscCode"`
	BranchCode      string      `gorm:"size:10;index" json:"branchCode"`
	Balance         int64       `gorm:"not null;default:0" json:"balance"`
	NomineeName     string      `gorm:"size:100" json:"nomineeName,omitempty"`
	NomineeRelation string      `gorm:"size:20" json:"nomineeRelation,omitempty"`
}

// Transaction rows are append-only: created once per mutation event and
// never updated or deleted.
type Transaction struct {
	gorm.Model
	FromAccountID *uint             `gorm:"index" json:"fromAccountId,omitempty"`
	ToAccountID   *uint             `gorm:"index" json:"toAccountId,omitempty"`
	Amount        int64             `gorm:"not null" json:"amount"`
	Mode          TransactionMode   `gorm:"size:20;not null" json:"mode"`
	Status        TransactionStatus `gorm:"size:10;not null" json:"status"`
	Description   string            `gorm:"size:255" json:"description,omitempty"`
	Reference     string            `gorm:"uniqueIndex;size:30;not null" json:"reference"`
}

type Loan struct {
	gorm.Model
	AccountID       uint            `gorm:"index;not null" json:"accountId"`
	UserID          uint            `gorm:"index;not null" json:"userId"`
	Type            LoanType        `gorm:"size:20;not null" json:"type"`
	Amount          int64           `gorm:"not null" json:"amount"`
	EMI             int64           `gorm:"not null" json:"emi"`
	StartDate       time.Time       `json:"startDate"`
	TenureMonths    int             `gorm:"not null" json:"tenureMonths"`
	RemainingAmount int64           `gorm:"not null" json:"remainingAmount"`
	InterestRate    decimal.Decimal `gorm:"type:numeric(5,2)" json:"interestRate"`
	Purpose         string          `gorm:"size:100" json:"purpose,omitempty"`
	Collateral      string          `gorm:"size:100" json:"collateral,omitempty"`
}

type Investment struct {
	gorm.Model
	UserID       uint            `gorm:"index;not null" json:"userId"`
	Type         InvestmentType  `gorm:"size:20;not null" json:"type"`
	Amount       int64           `gorm:"not null" json:"amount"`
	CurrentValue int64           `gorm:"not null" json:"currentValue"`
	InterestRate decimal.Decimal `gorm:"type:numeric(5,2)" json:"interestRate"`
	MaturityDate time.Time       `json:"maturityDate"`
}
