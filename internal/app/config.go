package app

import (
	"errors"

	"github.com/samber/oops"
	"github.com/spf13/viper"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // config directory, e.g. $HOME/.parley
	ListenPort int    // local port to accept a peer on
	Peer       string // optional peer address to dial at startup
	LogLevel   string // logrus level name
}

// Load reads configuration for the given home directory. Precedence is
// environment (PARLEY_*), then an optional parley.yaml in home, then
// defaults. Command-line flags override the result in the commands that
// define them.
func Load(home string) (Config, error) {
	v := viper.New()
	v.SetDefault("listen_port", 4444)
	v.SetDefault("peer", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("PARLEY")
	v.AutomaticEnv()

	v.SetConfigName("parley")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, oops.Wrapf(err, "app: reading config in %s", home)
		}
	}

	return Config{
		Home:       home,
		ListenPort: v.GetInt("listen_port"),
		Peer:       v.GetString("peer"),
		LogLevel:   v.GetString("log_level"),
	}, nil
}
