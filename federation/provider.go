package federation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/tranquoccuong0179/userstore/adapters/password"
	"github.com/tranquoccuong0179/userstore/adapters/userdb"
	"github.com/tranquoccuong0179/userstore/models"
)

// Config carries the provider's registration-time settings.
type Config struct {
	// ProviderID is the component identity baked into every storage id.
	ProviderID string
	// AddRolesToToken is declared in the provider configuration surface but
	// not consulted anywhere yet; kept so deployed configs keep parsing.
	AddRolesToToken bool
}

// Provider bridges the host platform to the external users table. It is
// stateless across calls: every lookup hits the store and wraps the row in a
// fresh adapter, and no result is cached.
type Provider struct {
	config Config
	store  *userdb.Store
}

var (
	_ StorageProvider = (*Provider)(nil)
	_ User            = (*userAdapter)(nil)
)

func NewProvider(config Config, store *userdb.Store) *Provider {
	return &Provider{config: config, store: store}
}

func (p *Provider) SupportsCredentialType(credentialType string) bool {
	return credentialType == CredentialTypePassword
}

// IsConfiguredFor always answers true: this store claims password validation
// for any principal it is asked about.
func (p *Provider) IsConfiguredFor(realm Realm, user User, credentialType string) bool {
	slog.Info("isConfiguredFor",
		slog.String("realm", realm.Name),
		slog.String("username", user.Username()),
		slog.String("credentialType", credentialType))
	return true
}

// IsValid decides password validity for a principal. It is fail-closed: a
// wrong credential kind, an empty challenge, an unknown username, a store
// fault, or a hash the verifier cannot read all answer false. Nothing on
// this path returns an error the host could misread as "try another
// provider", and unknown user and wrong password are indistinguishable to
// the caller.
func (p *Provider) IsValid(ctx context.Context, realm Realm, user User, input CredentialInput) bool {
	if input.Type != CredentialTypePassword {
		slog.Warn("Unexpected credential type", slog.String("type", input.Type))
		return false
	}
	if input.ChallengeResponse == "" {
		slog.Warn("Empty password input", slog.String("username", user.Username()))
		return false
	}
	entity, err := p.store.ByUsername(ctx, user.Username())
	if err != nil {
		slog.Warn("User lookup failed during password validation", slog.Any("error", err))
		return false
	}
	if entity == nil {
		return false
	}
	result := password.Verify(input.ChallengeResponse, entity.Password)
	if result != password.Verified {
		slog.Warn("Failed password validation", slog.String("username", user.Username()))
	}
	return result == password.Verified
}

// UserByID resolves a composite storage id back to a record. A malformed id
// or a store fault is a genuine error; an absent record is (nil, nil).
func (p *Provider) UserByID(ctx context.Context, realm Realm, id string) (User, error) {
	const op = "UserByID"
	_, externalID, err := ParseStorageID(id)
	if err != nil {
		return nil, fmt.Errorf("[%s] %w", op, err)
	}
	entity, err := p.store.ByID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to look up user, err=%w", op, err)
	}
	if entity == nil {
		slog.Info("User not found by id", slog.String("id", id), slog.String("realm", realm.Name))
		return nil, nil
	}
	return newUserAdapter(p.config.ProviderID, entity), nil
}

func (p *Provider) UserByUsername(ctx context.Context, realm Realm, username string) (User, error) {
	const op = "UserByUsername"
	entity, err := p.store.ByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to look up user, err=%w", op, err)
	}
	if entity == nil {
		return nil, nil
	}
	return newUserAdapter(p.config.ProviderID, entity), nil
}

// UserByEmail is advisory: the gateway folds every fault into "no match", so
// the returned error is always nil and kept only for contract symmetry.
func (p *Provider) UserByEmail(ctx context.Context, realm Realm, email string) (User, error) {
	entity := p.store.ByEmail(ctx, email)
	if entity == nil {
		return nil, nil
	}
	return newUserAdapter(p.config.ProviderID, entity), nil
}

func (p *Provider) SearchForUsers(ctx context.Context, realm Realm, term string, first, max *int) ([]User, error) {
	const op = "SearchForUsers"
	entities, err := p.store.Search(ctx, term, first, max)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to search users, err=%w", op, err)
	}
	return lo.Map(entities, func(entity models.User, _ int) User {
		return newUserAdapter(p.config.ProviderID, &entity)
	}), nil
}

// SearchByUserAttribute is not supported by this store.
func (p *Provider) SearchByUserAttribute(ctx context.Context, realm Realm, name, value string) ([]User, error) {
	return []User{}, nil
}

// GroupMembers is not supported by this store.
func (p *Provider) GroupMembers(ctx context.Context, realm Realm, group Group, first, max *int) ([]User, error) {
	return []User{}, nil
}

// RoleMembers is not supported by this store.
func (p *Provider) RoleMembers(ctx context.Context, realm Realm, role Role) ([]User, error) {
	return []User{}, nil
}

func (p *Provider) UsersCount(ctx context.Context, realm Realm) (int, error) {
	const op = "UsersCount"
	count, err := p.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("[%s] Fail to count users, err=%w", op, err)
	}
	return int(count), nil
}

// The filtered count variants are not supported by this store. They answer 0
// as a capability signal, not as a claim about store state.

func (p *Provider) UsersCountByGroups(ctx context.Context, realm Realm, groupIDs []string) (int, error) {
	return 0, nil
}

func (p *Provider) UsersCountByParams(ctx context.Context, realm Realm, params map[string]string) (int, error) {
	return 0, nil
}

func (p *Provider) UsersCountByParamsAndGroups(ctx context.Context, realm Realm, params map[string]string, groupIDs []string) (int, error) {
	return 0, nil
}

func (p *Provider) UsersCountIncludingServiceAccounts(ctx context.Context, realm Realm, includeServiceAccounts bool) (int, error) {
	return 0, nil
}

// AddUser answers nil: this provider does not create users. The host probes
// registration support routinely, so this must not error.
func (p *Provider) AddUser(ctx context.Context, realm Realm, username string) (User, error) {
	return nil, nil
}

// RemoveUser answers false: this provider does not remove users.
func (p *Provider) RemoveUser(ctx context.Context, realm Realm, user User) (bool, error) {
	return false, nil
}

// The pre-removal hooks only record the event; this store owns nothing the
// host is removing.

func (p *Provider) PreRemoveRealm(realm Realm) {
	slog.Info("pre-remove realm", slog.String("realm", realm.Name))
}

func (p *Provider) PreRemoveGroup(realm Realm, group Group) {
	slog.Info("pre-remove group", slog.String("realm", realm.Name), slog.String("group", group.Name))
}

func (p *Provider) PreRemoveRole(realm Realm, role Role) {
	slog.Info("pre-remove role", slog.String("realm", realm.Name), slog.String("role", role.Name))
}

// Close is a no-op; the store connection's lifecycle belongs to the caller.
func (p *Provider) Close() {}
