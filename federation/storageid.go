package federation

import (
	"errors"
	"fmt"
	"strings"
)

// Storage ids follow the host convention "f:<provider>:<external>" so the
// host can route an opaque principal id back to the component that minted it.
const storageIDPrefix = "f"

var ErrMalformedStorageID = errors.New("malformed storage id")

// ComposeStorageID derives the host-visible principal id for one record.
func ComposeStorageID(providerID, externalID string) string {
	return fmt.Sprintf("%s:%s:%s", storageIDPrefix, providerID, externalID)
}

// ParseStorageID splits a composite id minted by ComposeStorageID. Only the
// first two separators are structural; the external part may itself contain
// a colon.
func ParseStorageID(id string) (providerID, externalID string, err error) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[0] != storageIDPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedStorageID, id)
	}
	return parts[1], parts[2], nil
}
