// Package config holds the settings of the vaultctl client: defaults, an
// optional JSON file, GOPHVAULT_CLIENT_* environment variables and
// command-line flags, applied in that order.
package config

import "time"

// MinPartSize is the smallest part both backends accept for every part but
// the last.
const MinPartSize = 5 << 20

// Config holds runtime settings for the vaultctl client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the server gRPC endpoint.
//   - AccessToken: bearer token sent in the access_token header.
//   - DeviceID: id of this device, checked against the owner's plan.
//   - KeySalt: salt for deriving the master key from the passphrase. Every
//     device of one owner must use the same salt.
//   - PartSize: encrypted bytes per uploaded part.
//   - Timeout: bound for a whole command.
type Config struct {
	ServerEndpointAddr string        `koanf:"server_endpoint_addr" validate:"required,hostname_port"`
	AccessToken        string        `koanf:"access_token"`
	DeviceID           string        `koanf:"device_id"`
	KeySalt            string        `koanf:"key_salt" validate:"required"`
	PartSize           int64         `koanf:"part_size" validate:"gte=5242880"`
	Timeout            time.Duration `koanf:"timeout" validate:"gt=0"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.KeySalt = "gophvault"
	c.PartSize = 100 << 20
	c.Timeout = 10 * time.Minute
}
