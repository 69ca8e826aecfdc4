// internal/config/model.go
//
// Typed configuration model for the PetManager console.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                         – dotenv values,
//   • `conf/global.yaml`                           – primary static file,
//   • `PETMANAGER_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// API section
//

// API points the gateway client at the remote PetManager backend.
//
// The backend owns authentication, persistence, and business rules; the
// console only renders what it returns.  TimeoutSeconds bounds the HTTP
// transport—the submission layer applies no timeout of its own.
type API struct {
	BaseURL        string `koanf:"base_url" validate:"required,url"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"min=0"`
}

// Timeout returns the transport timeout, defaulting to 15 s when unset.
func (a API) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

//
// Session section
//

// Session selects where access tokens live between requests.
//
// The *template* DSN may carry a `vault:` reference for the password part;
// it is resolved before unmarshal, keeping credentials out of flat files
// and git history.
type Session struct {
	Backend    string `koanf:"backend" validate:"required,oneof=memory mysql"`
	DSN        string `koanf:"dsn" validate:"required_if=Backend mysql"`
	TTLMinutes int    `koanf:"ttl_minutes" validate:"min=0"`
}

// TTL returns the session lifetime, defaulting to 8 hours when unset.
func (s Session) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

//
// GeoIP section
//

// GeoIP is optional.  When DBPath is empty the request-enrichment
// middleware skips geolocation and logs UA data only.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or PETMANAGER_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string // PETMANAGER_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	API     API     `koanf:"api"`
	Session Session `koanf:"session"`
	GeoIP   GeoIP   `koanf:"geoip"`
	Paths   Paths   `koanf:"-"` // not loaded from config files
}
