package routes

import (
	"net/http"

	"github.com/dasakash26/Banking-Simulation/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Works Fine!"))
	})

	r.Post("/user", handlers.CreateUserHandler)
	r.Get("/user/all", handlers.GetAllUsersHandler)
	r.Get("/user/{pan}", handlers.GetUserByPANHandler)

	r.Post("/account", handlers.CreateAccountHandler)

	r.Post("/transaction", handlers.ProcessTransactionHandler)

	r.Post("/simulate", handlers.SimulateHandler)
	r.Post("/simulate/spending", handlers.SpendHandler)
	r.Post("/simulate/earning", handlers.EarnHandler)
	r.Post("/simulate/income-cycle", handlers.IncomeCycleHandler)
	r.Post("/simulate/revenue-gen", handlers.RevenueGenHandler)
	r.Post("/simulate/monthly-expense", handlers.MonthlyExpensesHandler)
	r.Post("/simulate/peer-transfer", handlers.PeerSimulationHandler)
	r.Post("/simulate/emi", handlers.LoanEMIHandler)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
