package services

import (
	portsrepo "github.com/peerpay/peerpay/internal/core/ports/repositories"
	portssvc "github.com/peerpay/peerpay/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:     NewUserService(repos.UserRepo),
		Transfer: NewTransferService(repos.UserRepo, repos.LedgerRepo),
		Request:  NewRequestService(repos.UserRepo, repos.LedgerRepo),
	}
}
