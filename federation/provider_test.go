package federation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tranquoccuong0179/userstore/adapters/password"
	"github.com/tranquoccuong0179/userstore/adapters/userdb"
	"github.com/tranquoccuong0179/userstore/models"
)

const testProviderID = "external-user-store"

type ProviderTestSuite struct {
	suite.Suite
	db       *gorm.DB
	provider *Provider
	realm    Realm
	alice    models.User
}

func (s *ProviderTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	// in-memory sqlite gives every connection its own database
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(db.AutoMigrate(&models.User{}, &models.UserAttribute{}))

	s.db = db
	s.provider = NewProvider(Config{ProviderID: testProviderID}, userdb.NewStore(db))
	s.realm = Realm{ID: "r1", Name: "master"}

	s.alice = s.seedUser("alice", "alice@x.com", "secret", map[string]string{
		"group": "admins",
	})
	s.seedUser("bob", "bob@x.com", "hunter2", map[string]string{
		"group": "admins",
	})
	s.seedUser("alison", "alison@x.com", "pa55word", nil)
}

func (s *ProviderTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *ProviderTestSuite) seedUser(username, email, plaintext string, attributes map[string]string) models.User {
	hash, err := password.Hash(plaintext)
	s.Require().NoError(err)
	user := models.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		FirstName: "First-" + username,
		LastName:  "Last-" + username,
		Phone:     "0900000000",
		Address:   "1 Example Road",
		Birthday:  time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Enabled:   true,
	}
	s.Require().NoError(s.db.Create(&user).Error)
	for key, value := range attributes {
		s.Require().NoError(s.db.Create(&models.UserAttribute{
			UserID: user.ID,
			Key:    key,
			Value:  value,
		}).Error)
	}
	return user
}

func (s *ProviderTestSuite) closeStore() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *ProviderTestSuite) userFor(username string) User {
	return newUserAdapter(testProviderID, &models.User{Username: username})
}

func (s *ProviderTestSuite) TestSupportsCredentialType() {
	s.True(s.provider.SupportsCredentialType(CredentialTypePassword))
	s.False(s.provider.SupportsCredentialType("otp"))
	s.False(s.provider.SupportsCredentialType(""))
}

func (s *ProviderTestSuite) TestIsConfiguredFor() {
	s.True(s.provider.IsConfiguredFor(s.realm, s.userFor("alice"), CredentialTypePassword))
	s.True(s.provider.IsConfiguredFor(s.realm, s.userFor("nobody"), "otp"))
}

func (s *ProviderTestSuite) TestIsValid() {
	ctx := context.Background()
	tests := []struct {
		name     string
		username string
		input    CredentialInput
		want     bool
	}{
		{
			name:     "correct password",
			username: "alice",
			input:    CredentialInput{Type: CredentialTypePassword, ChallengeResponse: "secret"},
			want:     true,
		},
		{
			name:     "wrong password",
			username: "alice",
			input:    CredentialInput{Type: CredentialTypePassword, ChallengeResponse: "wrong"},
			want:     false,
		},
		{
			name:     "unknown user",
			username: "ghost",
			input:    CredentialInput{Type: CredentialTypePassword, ChallengeResponse: "secret"},
			want:     false,
		},
		{
			name:     "empty challenge",
			username: "alice",
			input:    CredentialInput{Type: CredentialTypePassword},
			want:     false,
		},
		{
			name:     "unexpected credential type",
			username: "alice",
			input:    CredentialInput{Type: "otp", ChallengeResponse: "secret"},
			want:     false,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, s.provider.IsValid(ctx, s.realm, s.userFor(tt.username), tt.input))
		})
	}
}

func (s *ProviderTestSuite) TestIsValidFailsClosedOnStoreFault() {
	s.closeStore()
	input := CredentialInput{Type: CredentialTypePassword, ChallengeResponse: "secret"}
	s.False(s.provider.IsValid(context.Background(), s.realm, s.userFor("alice"), input))
}

func (s *ProviderTestSuite) TestUserByID() {
	ctx := context.Background()

	user, err := s.provider.UserByID(ctx, s.realm, ComposeStorageID(testProviderID, s.alice.ID.String()))
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal("alice", user.Username())

	absent, err := s.provider.UserByID(ctx, s.realm, ComposeStorageID(testProviderID, uuid.NewString()))
	s.Require().NoError(err)
	s.Nil(absent)

	_, err = s.provider.UserByID(ctx, s.realm, "not-a-storage-id")
	s.ErrorIs(err, ErrMalformedStorageID)
}

func (s *ProviderTestSuite) TestUserByUsername() {
	ctx := context.Background()

	user, err := s.provider.UserByUsername(ctx, s.realm, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal(ComposeStorageID(testProviderID, s.alice.ID.String()), user.ID())

	absent, err := s.provider.UserByUsername(ctx, s.realm, "ghost")
	s.Require().NoError(err)
	s.Nil(absent)
}

func (s *ProviderTestSuite) TestUserByUsernamePropagatesStoreFault() {
	s.closeStore()
	_, err := s.provider.UserByUsername(context.Background(), s.realm, "alice")
	s.Error(err)
}

func (s *ProviderTestSuite) TestUserByEmail() {
	ctx := context.Background()

	user, err := s.provider.UserByEmail(ctx, s.realm, "alice@x.com")
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal([]string{"alice@x.com"}, user.Attribute(AttrEmail))

	absent, err := s.provider.UserByEmail(ctx, s.realm, "ghost@x.com")
	s.Require().NoError(err)
	s.Nil(absent)
}

func (s *ProviderTestSuite) TestUserByEmailFoldsStoreFault() {
	s.closeStore()
	user, err := s.provider.UserByEmail(context.Background(), s.realm, "alice@x.com")
	s.Require().NoError(err)
	s.Nil(user)
}

func (s *ProviderTestSuite) TestSearchForUsers() {
	ctx := context.Background()

	users, err := s.provider.SearchForUsers(ctx, s.realm, "ali", nil, nil)
	s.Require().NoError(err)
	usernames := lo.Map(users, func(u User, _ int) string { return u.Username() })
	s.Equal([]string{"alice", "alison"}, usernames)

	empty, err := s.provider.SearchForUsers(ctx, s.realm, "zzz", nil, nil)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *ProviderTestSuite) TestSearchForUsersPaginationMatchesFullSlice() {
	ctx := context.Background()

	all, err := s.provider.SearchForUsers(ctx, s.realm, "", nil, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 3)

	page, err := s.provider.SearchForUsers(ctx, s.realm, "", lo.ToPtr(1), lo.ToPtr(2))
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(all[1].ID(), page[0].ID())
	s.Equal(all[2].ID(), page[1].ID())
}

func (s *ProviderTestSuite) TestUsersCount() {
	count, err := s.provider.UsersCount(context.Background(), s.realm)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *ProviderTestSuite) TestUnsupportedCountsAnswerZero() {
	ctx := context.Background()

	// two users carry a "group" attribute, yet every filtered count answers
	// the unsupported signal
	count, err := s.provider.UsersCountByGroups(ctx, s.realm, []string{"admins"})
	s.Require().NoError(err)
	s.Zero(count)

	count, err = s.provider.UsersCountByParams(ctx, s.realm, map[string]string{"group": "admins"})
	s.Require().NoError(err)
	s.Zero(count)

	count, err = s.provider.UsersCountByParamsAndGroups(ctx, s.realm, map[string]string{"group": "admins"}, []string{"admins"})
	s.Require().NoError(err)
	s.Zero(count)

	count, err = s.provider.UsersCountIncludingServiceAccounts(ctx, s.realm, true)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *ProviderTestSuite) TestUnsupportedQueriesAnswerEmpty() {
	ctx := context.Background()

	members, err := s.provider.GroupMembers(ctx, s.realm, Group{ID: "g1", Name: "admins"}, nil, nil)
	s.Require().NoError(err)
	s.Empty(members)

	members, err = s.provider.RoleMembers(ctx, s.realm, Role{Name: "admin"})
	s.Require().NoError(err)
	s.Empty(members)

	members, err = s.provider.SearchByUserAttribute(ctx, s.realm, "group", "admins")
	s.Require().NoError(err)
	s.Empty(members)
}

func (s *ProviderTestSuite) TestRegistrationIsUnsupported() {
	ctx := context.Background()

	user, err := s.provider.AddUser(ctx, s.realm, "newcomer")
	s.Require().NoError(err)
	s.Nil(user)

	removed, err := s.provider.RemoveUser(ctx, s.realm, s.userFor("alice"))
	s.Require().NoError(err)
	s.False(removed)

	// registration must not have touched the store
	count, err := s.provider.UsersCount(ctx, s.realm)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *ProviderTestSuite) TestPreRemoveHooksAreNoOps() {
	s.NotPanics(func() {
		s.provider.PreRemoveRealm(s.realm)
		s.provider.PreRemoveGroup(s.realm, Group{ID: "g1", Name: "admins"})
		s.provider.PreRemoveRole(s.realm, Role{Name: "admin"})
		s.provider.Close()
	})
}

func TestProviderTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}
