package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		hash      string
		want      Result
	}{
		{
			name:      "matching password",
			plaintext: "correct horse battery staple",
			hash:      hash,
			want:      Verified,
		},
		{
			name:      "wrong password",
			plaintext: "incorrect horse",
			hash:      hash,
			want:      NotVerified,
		},
		{
			name:      "empty plaintext",
			plaintext: "",
			hash:      hash,
			want:      NotVerified,
		},
		{
			name:      "empty hash",
			plaintext: "whatever",
			hash:      "",
			want:      NotVerified,
		},
		{
			name:      "malformed hash",
			plaintext: "whatever",
			hash:      "not-a-bcrypt-hash",
			want:      Fault,
		},
		{
			name:      "foreign scheme hash",
			plaintext: "whatever",
			hash:      "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
			want:      Fault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(tt.plaintext, tt.hash))
		})
	}
}

func TestHash(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := Hash("s3cret")
		require.NoError(t, err)
		assert.Equal(t, Verified, Verify("s3cret", hash))
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := Hash("")
		assert.Error(t, err)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		first, err := Hash("s3cret")
		require.NoError(t, err)
		second, err := Hash("s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}
