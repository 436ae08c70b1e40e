package config

const (
	defaultConfigPath           = "~/.config/multicam/config.toml"
	defaultLogDir               = "~/.local/share/multicam/logs"
	defaultStateDir             = "~/.local/share/multicam"
	defaultSensitivity1         = 0.055
	defaultSensitivity2         = 0.065
	defaultWindowFrames         = 1
	defaultEnvelope             = "peak"
	defaultChannel              = "mix"
	defaultMinNoiseSeconds      = 0.2
	defaultMaxSilenceGapSeconds = 0.5
	defaultLongFrameSeconds     = 2.0
	defaultDilutionIterations   = 3
	defaultMinHoldSeconds       = 1.0
	defaultPrimaryIndex         = 1
	defaultSecondaryIndex       = 2
	defaultPrimaryAngle         = 1
	defaultSecondaryAngle       = 2
	defaultFrameRate            = "25"
	defaultHistoryKeep          = 500
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogRetentionDays     = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Detection: Detection{
			Sensitivity1: defaultSensitivity1,
			Sensitivity2: defaultSensitivity2,
			WindowFrames: defaultWindowFrames,
			Envelope:     defaultEnvelope,
			Channel:      defaultChannel,
		},
		Sanitize: Sanitize{
			MinNoiseSeconds:      defaultMinNoiseSeconds,
			MaxSilenceGapSeconds: defaultMaxSilenceGapSeconds,
		},
		Merge: Merge{
			LongFrameSeconds: defaultLongFrameSeconds,
		},
		Dilution: Dilution{
			Iterations:     defaultDilutionIterations,
			MinHoldSeconds: defaultMinHoldSeconds,
		},
		Tracks: Tracks{
			PrimaryIndex:   defaultPrimaryIndex,
			SecondaryIndex: defaultSecondaryIndex,
			PrimaryAngle:   defaultPrimaryAngle,
			SecondaryAngle: defaultSecondaryAngle,
		},
		Project: Project{
			FrameRate: defaultFrameRate,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
