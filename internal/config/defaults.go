package config

// Defaults mirror config_set_defaults() from the dwl-derived original:
// the values every manager falls back to via Get*(key, default) when
// the store has nothing loaded for that key.
const (
	DefaultBorderWidth   = 1
	DefaultGapInnerH     = 10
	DefaultGapInnerV     = 10
	DefaultGapOuterH     = 10
	DefaultGapOuterV     = 10
	DefaultMasterFactor  = 0.55
	DefaultScrollerRatio = 0.8
	DefaultNMaster       = 1
	DefaultLayout        = "tile"
	DefaultRepeatRate    = 25
	DefaultRepeatDelay   = 600
	DefaultTagCount      = 9
)

// DefaultRootColor, DefaultBorderColor, DefaultFocusColor and
// DefaultUrgentColor are the stock appearance.colors.* palette.
var (
	DefaultRootColor   = Color{0x22 / 255.0, 0x22 / 255.0, 0x22 / 255.0, 1.0}
	DefaultBorderColor = Color{0x44 / 255.0, 0x44 / 255.0, 0x44 / 255.0, 1.0}
	DefaultFocusColor  = Color{0x00 / 255.0, 0x55 / 255.0, 0x77 / 255.0, 1.0}
	DefaultUrgentColor = Color{1.0, 0.0, 0.0, 1.0}
)
