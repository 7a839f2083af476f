// Package memory provides the in-memory repository.Store used by demos and
// tests. Writes are serialized behind a single RWMutex; membership edits are
// rare administrative actions, so one lock is enough to keep the
// single-owner invariant.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nazmulhasanDEV/invoice/internal/domain"
	"github.com/nazmulhasanDEV/invoice/internal/repository"
)

type core struct {
	mu sync.RWMutex

	users       map[uuid.UUID]domain.User
	teams       map[uuid.UUID]domain.Team
	members     map[uuid.UUID]domain.TeamMember
	invitations map[uuid.UUID]domain.Invitation
	payments    map[uuid.UUID]domain.PaymentMethod
	billing     map[uuid.UUID]domain.BillingRecord
	notifPrefs  map[uuid.UUID]domain.NotificationPreferences
	secSettings map[uuid.UUID]domain.SecuritySettings
}

// Store is an in-memory implementation of repository.Store.
type Store struct {
	c *core
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{c: &core{
		users:       make(map[uuid.UUID]domain.User),
		teams:       make(map[uuid.UUID]domain.Team),
		members:     make(map[uuid.UUID]domain.TeamMember),
		invitations: make(map[uuid.UUID]domain.Invitation),
		payments:    make(map[uuid.UUID]domain.PaymentMethod),
		billing:     make(map[uuid.UUID]domain.BillingRecord),
		notifPrefs:  make(map[uuid.UUID]domain.NotificationPreferences),
		secSettings: make(map[uuid.UUID]domain.SecuritySettings),
	}}
}

func (s *Store) Users() repository.UserRepository             { return &userRepo{s.c} }
func (s *Store) Teams() repository.TeamRepository             { return &teamRepo{s.c} }
func (s *Store) Invitations() repository.InvitationRepository { return &invitationRepo{s.c} }
func (s *Store) Billing() repository.BillingRepository        { return &billingRepo{s.c} }
func (s *Store) Settings() repository.SettingsRepository      { return &settingsRepo{s.c} }

type userRepo struct{ c *core }

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	r.c.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	user, ok := r.c.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, user := range r.c.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	user, err := r.GetByUsername(ctx, username)
	return user != nil, err
}

func (r *userRepo) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	user, ok := r.c.users[id]
	if !ok {
		return nil, nil
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	r.c.users[id] = user
	return &user, nil
}

func (r *userRepo) SetStripeCustomer(ctx context.Context, id uuid.UUID, customerID string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	user, ok := r.c.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.StripeCustomerID = customerID
	r.c.users[id] = user
	return nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	user, ok := r.c.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.LastLogin = time.Now()
	r.c.users[id] = user
	return nil
}

type teamRepo struct{ c *core }

func (r *teamRepo) CreateTeam(ctx context.Context, team *domain.Team, owner *domain.TeamMember) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	// Team and owner membership land in one critical section: no window
	// where the team exists with zero owners.
	r.c.teams[team.ID] = *team
	r.c.members[owner.ID] = *owner
	return nil
}

func (r *teamRepo) GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	team, ok := r.c.teams[id]
	if !ok {
		return nil, nil
	}
	return &team, nil
}

func (r *teamRepo) ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Team, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var teams []domain.Team
	for _, m := range r.c.members {
		if m.UserID != userID {
			continue
		}
		if team, ok := r.c.teams[m.TeamID]; ok {
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].CreatedAt.After(teams[j].CreatedAt) })
	return teams, nil
}

func (r *teamRepo) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.teams[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.c.teams, id)
	for memberID, m := range r.c.members {
		if m.TeamID == id {
			delete(r.c.members, memberID)
		}
	}
	for invID, inv := range r.c.invitations {
		if inv.TeamID == id {
			delete(r.c.invitations, invID)
		}
	}
	return nil
}

func (r *teamRepo) AddMember(ctx context.Context, member *domain.TeamMember) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	for _, m := range r.c.members {
		if m.TeamID == member.TeamID && m.UserID == member.UserID {
			return domain.ErrAlreadyMember
		}
		// Same rule as the partial unique index on (team_id) WHERE role = 'owner'
		if member.Role == domain.RoleOwner && m.TeamID == member.TeamID && m.Role == domain.RoleOwner {
			return domain.ErrOwnerProtected
		}
	}
	r.c.members[member.ID] = *member
	return nil
}

func (r *teamRepo) GetMember(ctx context.Context, memberID uuid.UUID) (*domain.TeamMember, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	member, ok := r.c.members[memberID]
	if !ok {
		return nil, nil
	}
	return &member, nil
}

func (r *teamRepo) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var members []domain.TeamMember
	for _, m := range r.c.members {
		if m.TeamID == teamID {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].JoinedAt.Before(members[j].JoinedAt) })
	return members, nil
}

func (r *teamRepo) UpdateMemberRole(ctx context.Context, memberID uuid.UUID, role domain.Role) (*domain.TeamMember, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	member, ok := r.c.members[memberID]
	if !ok {
		return nil, nil
	}
	if role == domain.RoleOwner && member.Role != domain.RoleOwner {
		for _, m := range r.c.members {
			if m.TeamID == member.TeamID && m.Role == domain.RoleOwner {
				return nil, domain.ErrOwnerProtected
			}
		}
	}
	member.Role = role
	r.c.members[memberID] = member
	return &member, nil
}

func (r *teamRepo) RemoveMember(ctx context.Context, memberID uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.members[memberID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.c.members, memberID)
	return nil
}

func (r *teamRepo) GetUserRole(ctx context.Context, userID, teamID uuid.UUID) (domain.Role, bool, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, m := range r.c.members {
		if m.UserID == userID && m.TeamID == teamID {
			return m.Role, true, nil
		}
	}
	return "", false, nil
}

type invitationRepo struct{ c *core }

func (r *invitationRepo) Create(ctx context.Context, invitation *domain.Invitation) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	r.c.invitations[invitation.ID] = *invitation
	return nil
}

func (r *invitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	inv, ok := r.c.invitations[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *invitationRepo) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, inv := range r.c.invitations {
		if inv.Token == token {
			i := inv
			return &i, nil
		}
	}
	return nil, nil
}

func (r *invitationRepo) ListPending(ctx context.Context, teamID uuid.UUID) ([]domain.Invitation, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	now := time.Now()
	var pending []domain.Invitation
	for _, inv := range r.c.invitations {
		if inv.TeamID == teamID && inv.Pending(now) {
			pending = append(pending, inv)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	return pending, nil
}

func (r *invitationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	delete(r.c.invitations, id)
	return nil
}

type billingRepo struct{ c *core }

func (r *billingRepo) AddPaymentMethod(ctx context.Context, method *domain.PaymentMethod) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	r.c.payments[method.ID] = *method
	return nil
}

func (r *billingRepo) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	method, ok := r.c.payments[id]
	if !ok {
		return nil, nil
	}
	return &method, nil
}

func (r *billingRepo) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var methods []domain.PaymentMethod
	for _, m := range r.c.payments {
		if m.UserID == userID {
			methods = append(methods, m)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].CreatedAt.Before(methods[j].CreatedAt) })
	return methods, nil
}

func (r *billingRepo) SetDefaultPaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	found := false
	for id, m := range r.c.payments {
		if m.UserID != userID {
			continue
		}
		m.IsDefault = id == methodID
		if m.IsDefault {
			found = true
		}
		r.c.payments[id] = m
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (r *billingRepo) RemovePaymentMethod(ctx context.Context, id uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	delete(r.c.payments, id)
	return nil
}

func (r *billingRepo) AddBillingRecord(ctx context.Context, record *domain.BillingRecord) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	r.c.billing[record.ID] = *record
	return nil
}

func (r *billingRepo) ListBillingHistory(ctx context.Context, userID uuid.UUID) ([]domain.BillingRecord, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var records []domain.BillingRecord
	for _, rec := range r.c.billing {
		if rec.UserID == userID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

type settingsRepo struct{ c *core }

func (r *settingsRepo) GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	prefs, ok := r.c.notifPrefs[userID]
	if !ok {
		return nil, nil
	}
	return &prefs, nil
}

func (r *settingsRepo) SaveNotificationPreferences(ctx context.Context, prefs *domain.NotificationPreferences) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	r.c.notifPrefs[prefs.UserID] = *prefs
	return nil
}

func (r *settingsRepo) GetSecuritySettings(ctx context.Context, userID uuid.UUID) (*domain.SecuritySettings, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	settings, ok := r.c.secSettings[userID]
	if !ok {
		return nil, nil
	}
	return &settings, nil
}

func (r *settingsRepo) SaveSecuritySettings(ctx context.Context, settings *domain.SecuritySettings) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	r.c.secSettings[settings.UserID] = *settings
	return nil
}
