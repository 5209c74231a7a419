package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saturnines/labclient/pkg/errors"
)

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks a profile and reports every problem it finds
type Validator interface {
	Validate(profile *Profile) []ValidationError
}

// DefaultValueSetter fills in unset values
type DefaultValueSetter interface {
	SetDefaults(profile *Profile)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// ProfileLoader reads connection profiles from YAML
type ProfileLoader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewProfileLoader creates a new ProfileLoader with the given components
func NewProfileLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *ProfileLoader {
	return &ProfileLoader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// DefaultLoader expands env vars, sets defaults and runs every validator.
func DefaultLoader() *ProfileLoader {
	return NewProfileLoader(
		&EnvExpander{},
		&ProfileDefaults{},
		&RequiredFieldValidator{},
		&AuthValidator{},
	)
}

// Load a profile from a YAML file
func (l *ProfileLoader) Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to read file")
	}

	return l.Parse(data)
}

// Parse parses a yaml profile
func (l *ProfileLoader) Parse(data []byte) (*Profile, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to parse YAML")
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&profile)
	}

	if err := l.Validate(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Validate runs every configured validator against profile.
func (l *ProfileLoader) Validate(profile *Profile) error {
	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(profile)...)
	}

	if len(allErrors) > 0 {
		return errors.WrapError(
			fmt.Errorf("%v", allErrors),
			errors.ErrValidation,
			"invalid profile",
		)
	}
	return nil
}

// ProfileDefaults implements DefaultValueSetter for Profile
type ProfileDefaults struct{}

// SetDefaults sets default values for Profile
func (d *ProfileDefaults) SetDefaults(profile *Profile) {
	if profile.APIVersion == "" {
		profile.APIVersion = DefaultAPIVersion
	}
	if profile.HTTP.TimeoutSecs <= 0 {
		profile.HTTP.TimeoutSecs = DefaultTimeoutSecs
	}
	if profile.HTTP.PerPage <= 0 {
		profile.HTTP.PerPage = DefaultPerPage
	}
	if profile.HTTP.UserAgent == "" {
		profile.HTTP.UserAgent = DefaultUserAgent
	}
	profile.Host = strings.TrimSuffix(profile.Host, "/")
}

// RequiredFieldValidator validates required fields
type RequiredFieldValidator struct{}

// Validate checks the host is an absolute http(s) URL
func (v *RequiredFieldValidator) Validate(profile *Profile) []ValidationError {
	var errs []ValidationError

	if profile.Host == "" {
		return append(errs, ValidationError{Field: "host", Message: "is required"})
	}

	u, err := url.Parse(profile.Host)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "host", Message: err.Error()})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{Field: "host", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)})
	case u.Host == "":
		errs = append(errs, ValidationError{Field: "host", Message: "has no host name"})
	}

	if profile.HTTP.PerPage > 100 {
		errs = append(errs, ValidationError{Field: "http.per_page", Message: "must not exceed 100"})
	}

	return errs
}

// AuthValidator handles authentication validation
type AuthValidator struct{}

// Validate checks that authentication configuration is valid
func (v *AuthValidator) Validate(profile *Profile) []ValidationError {
	var errs []ValidationError

	if profile.Auth == nil {
		return append(errs, ValidationError{Field: "auth", Message: "is required"})
	}

	switch profile.Auth.Type {
	case AuthTypePrivateToken, AuthTypePrivateTokenQuery, AuthTypeJobToken, AuthTypeBearer:
		if profile.Auth.Token == "" {
			errs = append(errs, ValidationError{Field: "auth.token", Message: fmt.Sprintf("is required for %s auth", profile.Auth.Type)})
		}
	case AuthTypeSession:
		if profile.Auth.Session == nil {
			errs = append(errs, ValidationError{Field: "auth.session", Message: "is required for session auth"})
		} else if profile.Auth.Session.Login == "" {
			errs = append(errs, ValidationError{Field: "auth.session.login", Message: "is required for session auth"})
		}
	default:
		errs = append(errs, ValidationError{Field: "auth.type", Message: fmt.Sprintf("unknown auth type: %s", profile.Auth.Type)})
	}

	return errs
}
