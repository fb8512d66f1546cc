package llm

// ServerConfig identifies one backend instance. It is produced by the
// external configuration store and treated as immutable once loaded;
// adapters hold a copy for their lifetime.
type ServerConfig struct {
	Name  string `mapstructure:"name"`
	Model string `mapstructure:"model"`

	// APIType selects which adapter to construct (see Backend).
	APIType string `mapstructure:"api_type"`

	BaseAPIURL string `mapstructure:"base_api_url"`

	// Secret names the credential to resolve for this server. Resolution is
	// the caller's concern; adapters only ever see the resolved token.
	Secret string `mapstructure:"secret"`

	// Timeouts are seconds. Nil means no client-enforced bound.
	ConnectionTimeout *uint64 `mapstructure:"connection_timeout"`
	DeadlineTimeout   *uint64 `mapstructure:"deadline_timeout"`
}
