package categories

// Uncategorized is assigned to imported rows no rule matched.
const Uncategorized = "Miscellaneous"

// Defaults returns the starting category list for a new ledger.
func Defaults() []string {
	return []string{
		"Advertising",
		"Bank Fees",
		"Cost of Goods Sold",
		"Depreciation",
		"Insurance",
		"Maintenance",
		"Miscellaneous",
		"Office Supplies",
		"Payroll",
		"Professional Services",
		"Rent Expense",
		"Sales Revenue",
		"Taxes",
		"Travel",
		"Utilities",
	}
}
