package repositories

// RepositoryProvider bundles the repository implementations so wiring code can
// pass them around as one handle instead of a process-wide singleton.
type RepositoryProvider struct {
	UserRepo   UserRepository
	LedgerRepo LedgerRepository
}
