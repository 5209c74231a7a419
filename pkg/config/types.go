package config

// Profile represents the full config for one GitLab connection
type Profile struct {
	Name       string `yaml:"name"`                  // Required: Unique identifier
	Host       string `yaml:"host"`                  // Required: e.g. https://gitlab.example.com
	APIVersion string `yaml:"api_version,omitempty"` // Defaults to v4
	Auth       *Auth  `yaml:"auth,omitempty"`        // Required authentication
	HTTP       HTTP   `yaml:"http,omitempty"`        // Transport tuning
	Debug      bool   `yaml:"debug,omitempty"`       // Enable debug logging
}

// HTTP holds transport settings
type HTTP struct {
	TimeoutSecs    int    `yaml:"timeout_secs,omitempty"`
	PerPage        int    `yaml:"per_page,omitempty"` // Page size requested from list endpoints
	UserAgent      string `yaml:"user_agent,omitempty"`
	SendRequestIDs bool   `yaml:"send_request_ids,omitempty"`
}

// Auth defines auth methods.
type Auth struct {
	Type    AuthType     `yaml:"type"`              // Required authentication type
	Token   string       `yaml:"token,omitempty"`   // private_token, job_token and bearer
	Session *SessionAuth `yaml:"session,omitempty"` // login/password bootstrap
}

// AuthType defines current supported authentication types
type AuthType string

const (
	AuthTypePrivateToken      AuthType = "private_token"
	AuthTypePrivateTokenQuery AuthType = "private_token_query" // token in the private_token query parameter
	AuthTypeJobToken          AuthType = "job_token"
	AuthTypeBearer            AuthType = "bearer"
	AuthTypeSession           AuthType = "session"
)

// SessionAuth contains the credentials exchanged for a private token
type SessionAuth struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
}

// Defaults applied by ProfileDefaults
const (
	DefaultAPIVersion  = "v4"
	DefaultTimeoutSecs = 30
	DefaultPerPage     = 20
	DefaultUserAgent   = "labclient"
)
