package flagx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-d", "postgres://db", "-x", "1"},
			allowedFlags: []string{"-d", "-a"},
			want:         []string{"-d", "postgres://db"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", ":50051"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-b"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b"},
		},
		{
			name:         "next dash-prefixed token is not a value",
			args:         []string{"-a", "-m", ":9090"},
			allowedFlags: []string{"-a", "-m"},
			want:         []string{"-a", "-m", ":9090"},
		},
		{
			name:         "repeated flag keeps order",
			args:         []string{"-b", "b2", "-b", "s3"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b", "b2", "-b", "s3"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/gophvault.json", ConfigFileFlag([]string{"-c", "/etc/gophvault.json", "-a", ":1"}))
	assert.Equal(t, "/etc/long.json", ConfigFileFlag([]string{"-config", "/etc/long.json"}))
	assert.Equal(t, "/etc/eq.json", ConfigFileFlag([]string{"--config=/etc/eq.json"}))
	assert.Empty(t, ConfigFileFlag([]string{"-d", "memory"}))
	assert.Equal(t, "/2.json", ConfigFileFlag([]string{"-c", "/1.json", "-config", "/2.json"}), "last wins")
}
