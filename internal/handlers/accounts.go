package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/dasakash26/Banking-Simulation/internal/httputil"
	"github.com/dasakash26/Banking-Simulation/internal/logger"
	"github.com/dasakash26/Banking-Simulation/internal/models"
	"github.com/dasakash26/Banking-Simulation/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultBranchCode = "000007"

type createAccountRequest struct {
	UserID          uint               `json:"userId"`
	Type            models.AccountType `json:"type"`
	BranchCode      string             `json:"branchCode"`
	NomineeName     string             `json:"nomineeName"`
	NomineeRelation string             `json:"nomineeRelation"`
}

// CreateAccountHandler opens a zero-balance account. An unknown branch
// code falls back to the default branch, provisioning it on first use.
func CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == 0 || req.Type == "" {
		httputil.WriteError(w, http.StatusBadRequest, "userId and type are required")
		return
	}

	var user models.User
	if err := store.DB.First(&user, req.UserID).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	branch, err := resolveBranch(req.BranchCode)
	if err != nil {
		logger.Log.Error("branch resolution failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	account := models.Account{
		UserID:          req.UserID,
		AccountNumber:   generateAccountNumber(),
		Type:            req.Type,
		IFSCCode:        branch.IFSCCode,
		BranchCode:      branch.Code,
		Balance:         0,
		NomineeName:     req.NomineeName,
		NomineeRelation: req.NomineeRelation,
	}
	if err := store.DB.Create(&account).Error; err != nil {
		logger.Log.Error("failed to create account", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, account, "Account created")
}

func resolveBranch(code string) (*models.Branch, error) {
	var branch models.Branch
	if code != "" {
		err := store.DB.Where("code = ?", code).First(&branch).Error
		if err == nil {
			return &branch, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := store.DB.Where("code = ?", defaultBranchCode).First(&branch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		branch = models.Branch{
			Code:     defaultBranchCode,
			Name:     "Default Branch",
			IFSCCode: "BANK0" + defaultBranchCode,
		}
		err = store.DB.Create(&branch).Error
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func generateAccountNumber() string {
	return fmt.Sprintf("AC%06d%04d", time.Now().UnixMilli()%1_000_000, rand.Intn(10_000))
}
