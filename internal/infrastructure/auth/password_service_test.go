package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, svc.Verify(hash, "s3cret-pass"))
	assert.False(t, svc.Verify(hash, "S3cret-pass"))
	assert.False(t, svc.Verify("not-a-hash", "s3cret-pass"))
}

func TestPasswordService_SaltedHashes(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	first, err := svc.Hash("same")
	require.NoError(t, err)
	second, err := svc.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, svc.Verify(first, "same"))
	assert.True(t, svc.Verify(second, "same"))
}

func TestNewPasswordServiceWithCost_Clamps(t *testing.T) {
	svc := NewPasswordServiceWithCost(99).(*PasswordServiceImpl)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)

	svc = NewPasswordServiceWithCost(bcrypt.MinCost).(*PasswordServiceImpl)
	assert.Equal(t, bcrypt.MinCost, svc.cost)
}
