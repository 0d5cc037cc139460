package models

// Table names one synchronizable entity collection. The same name is used for
// the SQL table on both stores and on the wire.
type Table string

const (
	TableTransactions Table = "transactions"
	TableHoldings     Table = "holdings"
	TableGoals        Table = "goals"
	TableLiabilities  Table = "liabilities"
	TableSecurities   Table = "securities"
	TablePrices       Table = "prices"
)

// SyncTables lists every table in the order the client syncs them when it
// runs sequentially. Securities come before holdings and prices so that
// references resolve on first sync.
var SyncTables = []Table{
	TableSecurities,
	TablePrices,
	TableHoldings,
	TableTransactions,
	TableGoals,
	TableLiabilities,
}

func (t Table) String() string {
	return string(t)
}
