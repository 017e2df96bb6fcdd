package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dasakash26/Banking-Simulation/configs"
	"github.com/dasakash26/Banking-Simulation/internal/logger"
	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var firstNames = []string{
	"Aarav", "Arjun", "Aditya", "Akshay", "Dhruv", "Ishaan", "Kabir",
	"Krishna", "Vihaan", "Ananya", "Diya", "Ishita", "Kiara", "Myra",
	"Riya", "Saanvi", "Zara", "Avni",
}

var lastNames = []string{
	"Sharma", "Patel", "Kumar", "Singh", "Verma", "Gupta", "Shah",
	"Reddy", "Joshi", "Mehta", "Iyer", "Nair", "Rao", "Das", "Banerjee",
	"Agarwal", "Desai", "Menon",
}

var branchSeeds = []struct {
	City  string
	State string
}{
	{"Mumbai", "Maharashtra"},
	{"Bangalore", "Karnataka"},
	{"Chennai", "Tamil Nadu"},
	{"Ahmedabad", "Gujarat"},
	{"New Delhi", "Delhi"},
}

var accountTypes = []struct {
	Type   models.AccountType
	Weight float64
}{
	{models.AccountSavings, 0.5},
	{models.AccountCurrent, 0.2},
	{models.AccountSalary, 0.1},
	{models.AccountDemat, 0.05},
	{models.AccountNRI, 0.05},
	{models.AccountPPF, 0.05},
	{models.AccountFD, 0.03},
	{models.AccountRD, 0.02},
}

var loanTypes = []models.LoanType{
	models.LoanHome, models.LoanCar, models.LoanPersonal,
	models.LoanEducation, models.LoanBusiness,
}

var investmentTypes = []models.InvestmentType{
	models.InvestmentFD, models.InvestmentMutualFund,
	models.InvestmentStocks, models.InvestmentBonds, models.InvestmentGold,
}

var employmentTypes = []models.EmploymentType{
	models.EmploymentEmployed, models.EmploymentBusiness, models.EmploymentUnemployed,
}

// Run populates demo branches, users, accounts, loans and investments.
// Idempotent: a database that already holds users is left untouched.
func Run() {
	if !configs.AppConfig.Seed.Enabled {
		logger.Log.Info("seeding disabled, skipping")
		return
	}

	db := store.DB
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	total := configs.AppConfig.Seed.Users
	if total <= 0 {
		total = 50
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		branches := make([]models.Branch, 0, len(branchSeeds))
		for i, b := range branchSeeds {
			branch := models.Branch{
				Code:     fmt.Sprintf("BR%04d", i+1),
				Name:     fmt.Sprintf("%s Main Branch", b.City),
				Address:  fmt.Sprintf("%d, M.G. Road", rng.Intn(100)+1),
				City:     b.City,
				State:    b.State,
				IFSCCode: fmt.Sprintf("DBANK%04d", i+1),
			}
			if err := tx.Create(&branch).Error; err != nil {
				return err
			}
			branches = append(branches, branch)
		}

		for i := 0; i < total; i++ {
			employment := employmentTypes[rng.Intn(len(employmentTypes))]
			user := models.User{
				PAN:            generatePAN(rng, i),
				Name:           randomName(rng),
				Mobile:         generateMobile(rng),
				Email:          fmt.Sprintf("user%d@example.com", i),
				EmploymentType: employment,
				Income:         generateIncome(rng, employment),
				KYCComplete:    rng.Float64() > 0.05,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			branch := branches[rng.Intn(len(branches))]
			account := models.Account{
				UserID:          user.ID,
				AccountNumber:   fmt.Sprintf("2023%010d", rng.Int63n(1e10)),
				Type:            randomAccountType(rng),
				IFSCCode:        branch.IFSCCode,
				BranchCode:      branch.Code,
				Balance:         generateBalance(rng, user.Income),
				NomineeName:     randomName(rng),
				NomineeRelation: []string{"Spouse", "Parent", "Child", "Sibling"}[rng.Intn(4)],
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}

			if rng.Float64() < 0.2 {
				principal := int64(rng.Intn(490) + 10) * 1_000_000 // 1-5 lakh rupees in paise
				loan := models.Loan{
					AccountID:       account.ID,
					UserID:          user.ID,
					Type:            loanTypes[rng.Intn(len(loanTypes))],
					Amount:          principal,
					EMI:             int64(rng.Intn(45)+5) * 100_000,
					StartDate:       time.Now().AddDate(0, -rng.Intn(24), 0),
					TenureMonths:    []int{12, 24, 36, 60, 120, 240}[rng.Intn(6)],
					RemainingAmount: int64(rng.Float64()*float64(principal)) + 1,
					InterestRate:    decimal.NewFromInt(int64(rng.Intn(9) + 7)),
					Purpose:         []string{"Home", "Business", "Education", "Personal"}[rng.Intn(4)],
				}
				if err := tx.Create(&loan).Error; err != nil {
					return err
				}
			}

			if rng.Float64() < 0.3 {
				amount := int64(rng.Intn(49)+1) * 1_000_000
				investment := models.Investment{
					UserID:       user.ID,
					Type:         investmentTypes[rng.Intn(len(investmentTypes))],
					Amount:       amount,
					CurrentValue: amount + int64(rng.Intn(20)-5)*amount/100,
					InterestRate: decimal.NewFromInt(int64(rng.Intn(11) + 5)),
					MaturityDate: time.Now().AddDate(rng.Intn(5)+1, 0, 0),
				}
				if err := tx.Create(&investment).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded demo population", zap.Int("users", total))
}

func randomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

func generatePAN(rng *rand.Rand, index int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return fmt.Sprintf("%c%c%cP%c%04d%c",
		letters[rng.Intn(26)], letters[rng.Intn(26)], letters[rng.Intn(26)],
		letters[rng.Intn(26)], index%10000, letters[rng.Intn(26)])
}

func generateMobile(rng *rand.Rand) string {
	return fmt.Sprintf("%c%09d", "6789"[rng.Intn(4)], rng.Intn(1e9))
}

func generateIncome(rng *rand.Rand, employment models.EmploymentType) int64 {
	var min, max int64
	switch employment {
	case models.EmploymentEmployed:
		min, max = 30_000_000, 250_000_000
	case models.EmploymentBusiness:
		min, max = 80_000_000, 500_000_000
	default:
		min, max = 0, 10_000_000
	}
	if max == min {
		return min
	}
	return min + rng.Int63n(max-min)
}

func generateBalance(rng *rand.Rand, income int64) int64 {
	if income <= 0 {
		return int64(rng.Intn(5000)+500) * 100
	}
	// Up to two years of income, floored at a small opening balance.
	return 500_000 + rng.Int63n(income*2+1)
}

func randomAccountType(rng *rand.Rand) models.AccountType {
	r := rng.Float64()
	var sum float64
	for _, at := range accountTypes {
		sum += at.Weight
		if r <= sum {
			return at.Type
		}
	}
	return models.AccountSavings
}
