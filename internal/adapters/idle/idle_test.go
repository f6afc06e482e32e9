package idle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHIDIdleTime(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int64
		wantErr bool
	}{
		{
			name: "idle for six minutes",
			out: `+-o IOHIDSystem  <class IOHIDSystem, id 0x100000464, registered, matched, active, busy 0 (0 ms), retain 27>
    {
      "HIDIdleTime" = 360250000000
      "HIDParameters" = {"HIDDefaultParameters"=Yes}
    }`,
			want: 360,
		},
		{name: "just touched", out: `      "HIDIdleTime" = 1200`, want: 0},
		{name: "missing key", out: `"HIDParameters" = {}`, wantErr: true},
		{name: "garbage value", out: `"HIDIdleTime" = soon`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHIDIdleTime([]byte(tt.out))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMillis(t *testing.T) {
	got, err := parseMillis([]byte("301999\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(301), got)

	_, err = parseMillis([]byte("unknown"))
	assert.Error(t, err)
}
