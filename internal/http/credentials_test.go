package http_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zaiushttp "github.com/fivetwenty-io/zaius-go/internal/http"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

func TestResolveCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       *zaius.RequestOptions
		defaultKey string
		wantKey    string
		wantBase   string
		wantErr    error
	}{
		{
			name:       "defaults",
			defaultKey: "default-key",
			wantKey:    "default-key",
			wantBase:   "https://api.zaius.com/v3",
		},
		{
			name:       "per-call key wins",
			opts:       &zaius.RequestOptions{APIKey: "call-key"},
			defaultKey: "default-key",
			wantKey:    "call-key",
			wantBase:   "https://api.zaius.com/v3",
		},
		{
			name:       "per-call base wins",
			opts:       &zaius.RequestOptions{APIBase: "https://eu.zaius.com/v3"},
			defaultKey: "default-key",
			wantKey:    "default-key",
			wantBase:   "https://eu.zaius.com/v3",
		},
		{
			name:    "no key",
			opts:    &zaius.RequestOptions{},
			wantErr: zaius.ErrMissingAPIKey,
		},
		{
			name:       "key with space",
			defaultKey: "abc def",
			wantErr:    zaius.ErrAPIKeyWhitespace,
		},
		{
			name:       "per-call key with newline",
			opts:       &zaius.RequestOptions{APIKey: "abc\n"},
			defaultKey: "default-key",
			wantErr:    zaius.ErrAPIKeyWhitespace,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			creds, err := zaiushttp.ResolveCredentials(testCase.opts, testCase.defaultKey, "https://api.zaius.com/v3")
			if testCase.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Equal(t, zaius.KindConfiguration, zaius.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantKey, creds.APIKey)
			assert.Equal(t, testCase.wantBase, creds.APIBase)
		})
	}
}
