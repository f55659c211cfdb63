package services

// ServiceContainer holds all the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Ledger     LedgerSvcFacade
	Stock      StockSvcFacade
	Transfer   TransferSvcFacade
	Adjustment AdjustmentSvcFacade
	Part       PartSvcFacade
	Location   LocationSvcFacade
}
