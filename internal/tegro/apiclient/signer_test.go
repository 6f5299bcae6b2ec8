package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	tests := []struct {
		name      string
		secretKey string
		body      string
		expected  string
	}{
		{
			name:      "rfc 4231 case 2",
			secretKey: "Jefe",
			body:      "what do ya want for nothing?",
			expected:  "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		},
		{
			name:      "empty body",
			secretKey: "key",
			body:      "",
			expected:  "5d5d139563c95b5967b9bd9a8c9b233a9dedb45072794cd232dc1b74832607d0",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			signature, err := Sign(test.secretKey, []byte(test.body))
			require.NoError(t, err)
			assert.Equal(t, test.expected, signature)
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	body := []byte(`{"amount":64.18,"nonce":1700000000000,"shop_id":"S1"}`)

	first, err := Sign("secret", body)
	require.NoError(t, err)
	second, err := Sign("secret", body)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	changed := append([]byte(nil), body...)
	changed[len(changed)-2] = '2'
	third, err := Sign("secret", changed)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestSign_MissingCredential(t *testing.T) {
	_, err := Sign("", []byte("{}"))
	assert.ErrorIs(t, err, ErrMissingCredential)
}
