package planning

// Strategy determines how payable invoices are prioritized
type Strategy string

const (
	// StrategyByDueDate prioritizes invoices with the nearest due dates
	StrategyByDueDate Strategy = "BY_DUE_DATE"
	// StrategyByImportance prioritizes invoices of the most important suppliers
	StrategyByImportance Strategy = "BY_IMPORTANCE"
	// StrategyOptimizeCashFlow prioritizes invoices by net financial benefit,
	// weighing early payment discounts against accruing late penalties
	StrategyOptimizeCashFlow Strategy = "OPTIMIZE_CASH_FLOW"
)

// IsValid checks if the strategy is a known variant
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyByDueDate, StrategyByImportance, StrategyOptimizeCashFlow:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (s Strategy) String() string {
	return string(s)
}
