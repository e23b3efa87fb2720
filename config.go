package depot

import (
	"os"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/TheBitDrifter/depot/sparse"
)

// Config holds global configuration. Storages copy it when they are created.
var Config config = config{
	pageSize: sparse.DefaultPageSize,
	logger:   zerolog.Nop(),
}

type config struct {
	pageSize int
	logger   zerolog.Logger
}

// EnvSettings are the environment variables read by Config.LoadEnv.
type EnvSettings struct {
	PageSize int    `config:"DEPOT_PAGE_SIZE"`
	LogLevel string `config:"DEPOT_LOG_LEVEL"`
}

// SetPageSize sets the sparse page size used by new storages. Non-positive
// sizes are ignored.
func (c *config) SetPageSize(n int) {
	if n > 0 {
		c.pageSize = n
	}
}

func (c *config) SetLogger(l zerolog.Logger) {
	c.logger = l
}

func (c *config) PageSize() int {
	return c.pageSize
}

func (c *config) Logger() zerolog.Logger {
	return c.logger
}

// LoadEnv applies EnvSettings found in the environment. Unset variables leave
// the current values alone. Setting a log level while logging is disabled
// switches to a stderr logger.
func (c *config) LoadEnv() error {
	var settings EnvSettings
	if err := jlconfig.FromEnv().To(&settings); err != nil {
		return eris.Wrap(err, "failed to read depot settings from environment")
	}
	if settings.PageSize < 0 {
		return eris.Errorf("DEPOT_PAGE_SIZE must be positive, got %d", settings.PageSize)
	}
	c.SetPageSize(settings.PageSize)

	if settings.LogLevel == "" {
		return nil
	}
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		return eris.Wrapf(err, "invalid DEPOT_LOG_LEVEL %q", settings.LogLevel)
	}
	logger := c.logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	c.logger = logger.Level(level)
	return nil
}
