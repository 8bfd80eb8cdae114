package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "sqlite backend valid", config: Config{Backend: BackendSQLite}},
		{name: "sqlite with data dir valid", config: Config{Backend: BackendSQLite, DataDir: "/tmp/fleet"}},
		{name: "empty backend rejected", config: Config{}, wantErr: ErrBackendEmpty},
		{name: "unknown backend rejected", config: Config{Backend: "postgres"}, wantErr: ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
