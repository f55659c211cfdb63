package services

import (
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly ordered
// dependencies: catalog services first, then the stock service they know
// nothing about, then the writers that need both.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Part = NewPartService(repos.PartRepo)
	container.Location = NewLocationService(repos.LocationRepo)

	container.Stock = NewStockService(repos.LedgerRepo, repos.StockCacheRepo)

	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Stock, container.Part, container.Location)
	container.Transfer = NewTransferService(repos.LedgerRepo, container.Stock, container.Part, container.Location)
	container.Adjustment = NewAdjustmentService(repos.LedgerRepo, container.Stock, container.Part, container.Location)

	return container
}
