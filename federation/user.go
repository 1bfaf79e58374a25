package federation

import (
	"time"

	"github.com/tranquoccuong0179/userstore/models"
)

// Attribute keys the adapter always publishes, mirroring the host's fixed
// user fields.
const (
	AttrUsername  = "username"
	AttrEmail     = "email"
	AttrFirstName = "firstName"
	AttrLastName  = "lastName"
)

// userAdapter presents one store record through the User contract. It is
// built fresh per call and holds nothing beyond the record; setters mutate
// the in-memory record only and are discarded with it. The read path is the
// product here, identity management stays with whoever provisions the table.
type userAdapter struct {
	providerID string
	entity     *models.User
}

func newUserAdapter(providerID string, entity *models.User) *userAdapter {
	return &userAdapter{providerID: providerID, entity: entity}
}

func (u *userAdapter) ID() string {
	return ComposeStorageID(u.providerID, u.entity.ID.String())
}

func (u *userAdapter) Username() string { return u.entity.Username }

func (u *userAdapter) Email() string { return u.entity.Email }

func (u *userAdapter) FirstName() string { return u.entity.FirstName }

func (u *userAdapter) LastName() string { return u.entity.LastName }

func (u *userAdapter) Enabled() bool { return u.entity.Enabled }

func (u *userAdapter) EmailVerified() bool { return u.entity.EmailVerified }

func (u *userAdapter) CreatedAt() time.Time { return u.entity.CreatedAt }

// Attributes flattens the record into the host's multi-valued attribute bag.
// Fixed keys are always present, extension keys only when set on the record.
// The map is assembled fresh on every call so the host can mutate it freely.
func (u *userAdapter) Attributes() map[string][]string {
	attributes := map[string][]string{
		AttrUsername:  {u.entity.Username},
		AttrEmail:     {u.entity.Email},
		AttrFirstName: {u.entity.FirstName},
		AttrLastName:  {u.entity.LastName},
	}
	for _, attribute := range u.entity.Attributes {
		attributes[attribute.Key] = []string{attribute.Value}
	}
	return attributes
}

// Attribute returns the values for one key, or an empty slice when the key is
// absent. An empty slice is the "not found" contract, never nil-as-signal.
func (u *userAdapter) Attribute(name string) []string {
	if values, ok := u.Attributes()[name]; ok {
		return values
	}
	return []string{}
}

func (u *userAdapter) FirstAttribute(name string) (string, bool) {
	values := u.Attribute(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (u *userAdapter) SetUsername(username string) { u.entity.Username = username }

func (u *userAdapter) SetEmail(email string) { u.entity.Email = email }

func (u *userAdapter) SetFirstName(firstName string) { u.entity.FirstName = firstName }

func (u *userAdapter) SetLastName(lastName string) { u.entity.LastName = lastName }

func (u *userAdapter) SetEnabled(enabled bool) { u.entity.Enabled = enabled }

func (u *userAdapter) SetEmailVerified(verified bool) { u.entity.EmailVerified = verified }

// SetAttribute updates or adds one extension attribute on the in-memory
// record. Like every setter on this view, it is not written back.
func (u *userAdapter) SetAttribute(name, value string) {
	for i := range u.entity.Attributes {
		if u.entity.Attributes[i].Key == name {
			u.entity.Attributes[i].Value = value
			return
		}
	}
	u.entity.Attributes = append(u.entity.Attributes, models.UserAttribute{
		UserID: u.entity.ID,
		Key:    name,
		Value:  value,
	})
}
