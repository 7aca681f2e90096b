package services

import (
	portsrepo "github.com/digibank/backend/internal/core/ports/repositories"
	portssvc "github.com/digibank/backend/internal/core/ports/services"
	"github.com/digibank/backend/pkg/config"
)

// NewServiceContainer wires every service against one repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Customer:    NewCustomerService(repos.CustomerRepo, repos.AccountRepo),
		Account:     NewAccountService(repos.AccountRepo, repos.CustomerRepo),
		Transaction: NewTransactionService(repos.LedgerRepo),
		History:     NewHistoryService(repos.AccountRepo, repos.OperationRepo),
		Auth:        NewAuthService(cfg),
	}
}
