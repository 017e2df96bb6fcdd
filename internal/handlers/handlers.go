package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dasakash26/Banking-Simulation/internal/httputil"
	"github.com/dasakash26/Banking-Simulation/internal/ledger"
	"github.com/dasakash26/Banking-Simulation/internal/logger"
	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/simulation"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	ledgerStore store.Store
	ledgerSvc   *ledger.Service
	simEngine   *simulation.Engine
)

// Init wires the request handlers to the core. Called once from main (or
// from tests with an in-memory store).
func Init(st store.Store, svc *ledger.Service, eng *simulation.Engine) {
	ledgerStore = st
	ledgerSvc = svc
	simEngine = eng
}

// writeCoreError maps the core's typed failures onto status codes.
func writeCoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrSameAccount),
		errors.Is(err, ledger.ErrMissingAccount):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateReference):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		httputil.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Log.Error("request failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

type createUserRequest struct {
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Mobile         string                `json:"mobile"`
	PAN            string                `json:"pan"`
	DOB            *time.Time            `json:"dob"`
	EmploymentType models.EmploymentType `json:"employmentType"`
	Income         int64                 `json:"income"`
	KYCComplete    bool                  `json:"kycComplete"`
}

func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.PAN == "" || req.EmploymentType == "" || req.Income <= 0 {
		httputil.WriteError(w, http.StatusBadRequest, "name, email, pan, employment type and income are required")
		return
	}

	var count int64
	if err := store.DB.Model(&models.User{}).Where("pan = ?", req.PAN).Count(&count).Error; err != nil {
		logger.Log.Error("user lookup failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	if count > 0 {
		httputil.WriteError(w, http.StatusConflict, "user with this PAN already exists")
		return
	}

	user := models.User{
		Name:           req.Name,
		Email:          req.Email,
		Mobile:         req.Mobile,
		PAN:            req.PAN,
		DOB:            req.DOB,
		EmploymentType: req.EmploymentType,
		Income:         req.Income,
		KYCComplete:    req.KYCComplete,
	}
	if err := store.DB.Create(&user).Error; err != nil {
		logger.Log.Error("failed to create user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user, "User created")
}

type userWithNetWorth struct {
	models.User
	NetWorth int64 `json:"netWorth"`
}

func GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := store.DB.
		Preload("Accounts").
		Preload("Loans").
		Preload("Investments").
		Find(&users).Error; err != nil {
		logger.Log.Error("failed to fetch users", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}

	out := make([]userWithNetWorth, 0, len(users))
	for _, u := range users {
		out = append(out, userWithNetWorth{User: u, NetWorth: netWorth(u)})
	}
	httputil.WriteJSON(w, http.StatusOK, out, "Users found")
}

func GetUserByPANHandler(w http.ResponseWriter, r *http.Request) {
	pan := chi.URLParam(r, "pan")

	var user models.User
	if err := store.DB.
		Preload("Accounts").
		Preload("Loans").
		Preload("Investments").
		Where("pan = ?", pan).
		First(&user).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, userWithNetWorth{User: user, NetWorth: netWorth(user)}, "User found")
}

// netWorth sums account balances and investment values, less outstanding
// loan debt.
func netWorth(u models.User) int64 {
	var assets, liabilities int64
	for _, a := range u.Accounts {
		assets += a.Balance
	}
	for _, inv := range u.Investments {
		assets += inv.CurrentValue
	}
	for _, l := range u.Loans {
		liabilities += l.RemainingAmount
	}
	return assets - liabilities
}
