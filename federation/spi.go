package federation

import (
	"context"
	"time"
)

// CredentialTypePassword is the only credential kind this store validates.
const CredentialTypePassword = "password"

// CredentialInput is a presented secret plus its declared kind.
type CredentialInput struct {
	Type              string
	ChallengeResponse string
}

// Realm, Group and Role are references the host passes for scoping. The
// bridge keeps no per-realm state; they exist so hooks and lookups carry the
// host's context through unchanged.
type Realm struct {
	ID   string
	Name string
}

type Group struct {
	ID   string
	Name string
}

type Role struct {
	Name string
}

// User is the polymorphic principal contract the host consumes. Attribute
// access is multi-valued per key even though this store only ever supplies
// one value per key. Setters change the in-memory view only; nothing is
// written back to the external store.
type User interface {
	ID() string
	Username() string
	Email() string
	FirstName() string
	LastName() string
	Enabled() bool
	EmailVerified() bool
	CreatedAt() time.Time

	Attributes() map[string][]string
	Attribute(name string) []string
	FirstAttribute(name string) (string, bool)

	SetUsername(username string)
	SetEmail(email string)
	SetFirstName(firstName string)
	SetLastName(lastName string)
	SetEnabled(enabled bool)
	SetEmailVerified(verified bool)
	SetAttribute(name, value string)
}

// StorageProvider enumerates the full capability surface the host probes.
// Every capability this store does not implement answers its defined empty
// value (0, empty slice, nil, false) so the host reads "unsupported" rather
// than a fault. Listing them here keeps each branch deliberate.
type StorageProvider interface {
	// credential validation
	SupportsCredentialType(credentialType string) bool
	IsConfiguredFor(realm Realm, user User, credentialType string) bool
	IsValid(ctx context.Context, realm Realm, user User, input CredentialInput) bool

	// lookup
	UserByID(ctx context.Context, realm Realm, id string) (User, error)
	UserByUsername(ctx context.Context, realm Realm, username string) (User, error)
	UserByEmail(ctx context.Context, realm Realm, email string) (User, error)

	// query
	SearchForUsers(ctx context.Context, realm Realm, term string, first, max *int) ([]User, error)
	SearchByUserAttribute(ctx context.Context, realm Realm, name, value string) ([]User, error)
	GroupMembers(ctx context.Context, realm Realm, group Group, first, max *int) ([]User, error)
	RoleMembers(ctx context.Context, realm Realm, role Role) ([]User, error)

	// counts
	UsersCount(ctx context.Context, realm Realm) (int, error)
	UsersCountByGroups(ctx context.Context, realm Realm, groupIDs []string) (int, error)
	UsersCountByParams(ctx context.Context, realm Realm, params map[string]string) (int, error)
	UsersCountByParamsAndGroups(ctx context.Context, realm Realm, params map[string]string, groupIDs []string) (int, error)
	UsersCountIncludingServiceAccounts(ctx context.Context, realm Realm, includeServiceAccounts bool) (int, error)

	// registration
	AddUser(ctx context.Context, realm Realm, username string) (User, error)
	RemoveUser(ctx context.Context, realm Realm, user User) (bool, error)

	// lifecycle hooks
	PreRemoveRealm(realm Realm)
	PreRemoveGroup(realm Realm, group Group)
	PreRemoveRole(realm Realm, role Role)
	Close()
}
