package simulation

// Config tunes the simulation policies. All amounts are minor currency
// units (paise); percentages are fractions of the current balance.
type Config struct {
	// Monthly expense debit, as a fraction of the account balance.
	ExpenseMinPercent float64
	ExpenseMaxPercent float64

	// Peer transfers: per-user probability of sending one, and the amount
	// range.
	TransferChance float64
	TransferMin    int64
	TransferMax    int64

	// Emergency top-up: accounts below the floor are credited an amount in
	// [EmergencyMin, EmergencyMax).
	EmergencyFloor int64
	EmergencyMin   int64
	EmergencyMax   int64

	// Balance drift: random adjustments in [DriftMin, DriftMax) applied to
	// accounts above the per-employment-type floor. BUSINESS drift is
	// scaled by DriftBusinessFactor.
	DriftMin            int64
	DriftMax            int64
	DriftBusinessFactor float64
	BusinessFloor       int64
	EmployedFloor       int64
}

func DefaultConfig() Config {
	return Config{
		ExpenseMinPercent:   0.2,
		ExpenseMaxPercent:   0.4,
		TransferChance:      0.6,
		TransferMin:         10_000,
		TransferMax:         200_000,
		EmergencyFloor:      50_000,
		EmergencyMin:        200_000,
		EmergencyMax:        500_000,
		DriftMin:            10_000,
		DriftMax:            100_000,
		DriftBusinessFactor: 1.5,
		BusinessFloor:       500_000,
		EmployedFloor:       200_000,
	}
}
