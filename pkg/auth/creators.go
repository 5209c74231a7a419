package auth

import (
	"fmt"

	"github.com/saturnines/labclient/pkg/config"
	"github.com/saturnines/labclient/pkg/errors"
)

func requireToken(authConfig *config.Auth, kind string) error {
	if authConfig.Token == "" {
		return errors.WrapError(
			fmt.Errorf("%s token is required", kind),
			errors.ErrConfiguration,
			"create "+kind+" auth",
		)
	}
	return nil
}

func createPrivateTokenAuth(authConfig *config.Auth) (Handler, error) {
	if err := requireToken(authConfig, "private"); err != nil {
		return nil, err
	}
	return NewPrivateTokenAuth(authConfig.Token), nil
}

func createPrivateTokenQueryAuth(authConfig *config.Auth) (Handler, error) {
	if err := requireToken(authConfig, "private"); err != nil {
		return nil, err
	}
	return NewPrivateTokenQueryAuth(authConfig.Token), nil
}

func createJobTokenAuth(authConfig *config.Auth) (Handler, error) {
	if err := requireToken(authConfig, "job"); err != nil {
		return nil, err
	}
	return NewJobTokenAuth(authConfig.Token), nil
}

func createBearerAuth(authConfig *config.Auth) (Handler, error) {
	if err := requireToken(authConfig, "bearer"); err != nil {
		return nil, err
	}
	return NewBearerAuth(authConfig.Token), nil
}
