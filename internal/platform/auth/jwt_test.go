package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobTokenManager_Generate(t *testing.T) {
	manager := NewJobTokenManager("job-secret-32-characters-long!!", 15*time.Minute)

	t.Run("generates a valid token", func(t *testing.T) {
		token, err := manager.Generate("job-123")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("token round-trips to the same job id", func(t *testing.T) {
		token, err := manager.Generate("job-456")
		require.NoError(t, err)

		claims, err := manager.Validate(token)

		require.NoError(t, err)
		assert.Equal(t, "job-456", claims.JobID)
	})
}

func TestJobTokenManager_Validate(t *testing.T) {
	manager := NewJobTokenManager("job-secret-32-characters-long!!", 15*time.Minute)

	t.Run("rejects a malformed token", func(t *testing.T) {
		_, err := manager.Validate("not-a-token")
		assert.Error(t, err)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		token, err := manager.Generate("job-789")
		require.NoError(t, err)

		other := NewJobTokenManager("a-completely-different-secret!!", 15*time.Minute)
		_, err = other.Validate(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJobTokenManager("job-secret-32-characters-long!!", -1*time.Second)
		token, err := expired.Generate("job-999")
		require.NoError(t, err)

		_, err = manager.Validate(token)
		assert.Error(t, err)
	})
}
