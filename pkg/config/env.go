package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/saturnines/labclient/pkg/errors"
)

// envOverrides lists the variables that take precedence over the YAML profile.
// Unset variables leave the profile untouched.
type envOverrides struct {
	Host        string `env:"LABCLIENT_HOST"`
	APIVersion  string `env:"LABCLIENT_API_VERSION"`
	AuthType    string `env:"LABCLIENT_AUTH_TYPE"`
	Token       string `env:"LABCLIENT_TOKEN"`
	Login       string `env:"LABCLIENT_LOGIN"`
	Password    string `env:"LABCLIENT_PASSWORD"`
	TimeoutSecs int    `env:"LABCLIENT_TIMEOUT_SECS"`
	PerPage     int    `env:"LABCLIENT_PER_PAGE"`
	Debug       *bool  `env:"LABCLIENT_DEBUG"`
}

// ApplyEnv overlays LABCLIENT_* environment variables onto profile.
// A token without an explicit auth type implies private_token auth.
func ApplyEnv(profile *Profile) error {
	return applyEnv(profile, env.Options{})
}

func applyEnv(profile *Profile, opts env.Options) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return errors.WrapError(err, errors.ErrConfiguration, "failed to read environment")
	}

	if o.Host != "" {
		profile.Host = o.Host
	}
	if o.APIVersion != "" {
		profile.APIVersion = o.APIVersion
	}
	if o.TimeoutSecs > 0 {
		profile.HTTP.TimeoutSecs = o.TimeoutSecs
	}
	if o.PerPage > 0 {
		profile.HTTP.PerPage = o.PerPage
	}
	if o.Debug != nil {
		profile.Debug = *o.Debug
	}

	if o.AuthType == "" && o.Token == "" && o.Login == "" {
		return nil
	}
	if profile.Auth == nil {
		profile.Auth = &Auth{}
	}
	if o.AuthType != "" {
		profile.Auth.Type = AuthType(o.AuthType)
	}
	if o.Token != "" {
		profile.Auth.Token = o.Token
		if profile.Auth.Type == "" {
			profile.Auth.Type = AuthTypePrivateToken
		}
	}
	if o.Login != "" {
		profile.Auth.Session = &SessionAuth{Login: o.Login, Password: o.Password}
		if profile.Auth.Type == "" {
			profile.Auth.Type = AuthTypeSession
		}
	}
	return nil
}
