package proposals

import "github.com/goliatone/go-proposals/internal/runtimeconfig"

var (
	ErrStatusesRequired       = runtimeconfig.ErrStatusesRequired
	ErrStatusDuplicate        = runtimeconfig.ErrStatusDuplicate
	ErrClassUnknown           = runtimeconfig.ErrClassUnknown
	ErrClassDuplicate         = runtimeconfig.ErrClassDuplicate
	ErrClassGlobRequired      = runtimeconfig.ErrClassGlobRequired
	ErrClassOutputDirRequired = runtimeconfig.ErrClassOutputDirRequired
	ErrOutputRootRequired     = runtimeconfig.ErrOutputRootRequired
	ErrWorkersInvalid         = runtimeconfig.ErrWorkersInvalid
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ClassConfig     = runtimeconfig.ClassConfig
	ValidatorConfig = runtimeconfig.ValidatorConfig
	ExporterConfig  = runtimeconfig.ExporterConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML or TOML configuration file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
