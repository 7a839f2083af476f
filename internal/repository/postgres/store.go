package postgres

import "github.com/nazmulhasanDEV/invoice/internal/repository"

// Store bundles the Postgres-backed repositories
type Store struct {
	users       *UserRepository
	teams       *TeamRepository
	invitations *InvitationRepository
	billing     *BillingRepository
	settings    *SettingsRepository
}

// NewStore creates a store over an open connection pool
func NewStore(db *DB) *Store {
	return &Store{
		users:       NewUserRepository(db),
		teams:       NewTeamRepository(db),
		invitations: NewInvitationRepository(db),
		billing:     NewBillingRepository(db),
		settings:    NewSettingsRepository(db),
	}
}

func (s *Store) Users() repository.UserRepository             { return s.users }
func (s *Store) Teams() repository.TeamRepository             { return s.teams }
func (s *Store) Invitations() repository.InvitationRepository { return s.invitations }
func (s *Store) Billing() repository.BillingRepository        { return s.billing }
func (s *Store) Settings() repository.SettingsRepository      { return s.settings }
