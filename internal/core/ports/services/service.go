package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	User     UserSvcFacade
	Transfer TransferSvcFacade
	Request  RequestSvcFacade
}
