package daraz

// Config holds configuration for the Daraz open platform integration. An
// empty app key/secret pair is allowed at construction; calls that need
// credentials fail with ErrNotConfigured instead.
type Config struct {
	// AppKey is the application key from the Daraz open platform
	AppKey string
	// AppSecret is the application secret; handed to the Signer at client
	// construction and to the token endpoints that require it as a parameter
	AppSecret string
	// APIBaseURL is the base URL for the partner REST API
	APIBaseURL string
	// AuthBaseURL is the base URL of the seller-facing OAuth authorize page
	AuthBaseURL string
	// RedirectURI is this system's own OAuth callback endpoint
	RedirectURI string
	// TimeoutSeconds is the HTTP request timeout for outbound calls
	TimeoutSeconds int
}

const (
	// ProductionAPIURL is the production partner API endpoint
	ProductionAPIURL = "https://api.daraz.com/rest"
	// ProductionAuthURL is the seller OAuth authorize page
	ProductionAuthURL = "https://auth.daraz.com/oauth/authorize"
)

// NewConfig creates a configuration with production defaults
func NewConfig(appKey, appSecret string) *Config {
	cfg := &Config{AppKey: appKey, AppSecret: appSecret}
	cfg.normalize()
	return cfg
}

// normalize fills unset fields with production defaults
func (c *Config) normalize() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = ProductionAPIURL
	}
	if c.AuthBaseURL == "" {
		c.AuthBaseURL = ProductionAuthURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}
