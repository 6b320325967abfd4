package domain

// Table is a mongo collection name
type Table string

const (
	TableListings            Table = "listings"
	TableSequences           Table = "sequences"
	TableLedgerAccounts      Table = "ledger_accounts"
	TableMarketplaceEvents   Table = "marketplace_events"
	TableMarketplaceSettings Table = "marketplace_settings"
)
