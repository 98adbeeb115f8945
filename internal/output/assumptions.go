package output

// DefaultAssumptions lists the modeling simplifications printed with every
// ledger.
var DefaultAssumptions = []string{
	"Premiums, charges and growth are annual; growth is earned on a mid-year balance",
	"Cost of insurance is charged per $1,000 of net sum at risk for the base plan",
	"Rider cost of insurance is charged on the full rider sum assured",
	"Rates between tabulated ages are linearly interpolated",
	"The illustrated return is a constant assumption, not a guarantee",
	"Projection stops at age 100",
}
