package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "unit-test-encryption-key!!2026!!") // 32 raw bytes, not valid base64

	plaintext := "TXN-2026-000981"
	ciphertext, err := EncryptData(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := DecryptData(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptEmptyStringIsNoop(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "unit-test-encryption-key!!2026!!")

	ciphertext, err := EncryptData("")
	require.NoError(t, err)
	assert.Empty(t, ciphertext)
}

func TestEncryptWithoutKeyFails(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "")

	_, err := EncryptData("secret")
	assert.Error(t, err)
}

func TestDecryptGarbageFails(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "unit-test-encryption-key!!2026!!")

	_, err := DecryptData("AAAA")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3curePass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3curePass", hash)

	assert.True(t, CheckPassword(hash, "s3curePass"))
	assert.False(t, CheckPassword(hash, "wrongPass1"))
}
