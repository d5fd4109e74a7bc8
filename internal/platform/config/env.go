package config

import (
	"github.com/caarlos0/env/v11"

	apperrors "github.com/louisbranch/sanity/internal/platform/errors"
)

// EnvPrefix prefixes every environment variable the project reads. Struct
// tags name variables without it.
const EnvPrefix = "SANITY_"

// ParseEnv loads configuration from EnvPrefix-ed environment variables into
// target. Failures carry apperrors.CodeConfigInvalid.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return apperrors.Wrap(apperrors.CodeConfigInvalid, "parse env: "+err.Error(), err)
	}
	return nil
}
