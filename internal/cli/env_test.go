package cli

import (
	"testing"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/constants"
)

// isolateEnv blanks every variable config.Load reads so the host
// environment cannot point tests at Redis, HTTP or a device.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		constants.LogLevelEnvVar,
		constants.LogPathEnvVar,
		constants.LocaleEnvVar,
		constants.InitialRouteEnvVar,
		constants.ManifestURLEnvVar,
		constants.RedisAddrEnvVar,
		constants.InputDeviceEnvVar,
	} {
		t.Setenv(name, "")
	}
}
