package catalog

// Supported catalog file formats, selected by file extension
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// CurrentVersion is the only catalog schema version this build understands
const CurrentVersion = 1

// Defaults applied when a catalog omits a value
const (
	DefaultInitialCurrency  = 500
	DefaultInitialPlots     = 3
	DefaultLevelExperience  = 100
	DefaultTheftAmount      = 1
	DefaultTheftCapPercent  = 100
	DefaultShopPageSize     = 10
	DefaultWitherMultiplier = 2.0
	BasePlotLevel           = 1
)

// Error context messages for wrapped errors during catalog loading
const (
	ErrContextReadFile     = "failed to read catalog %s"
	ErrContextDecode       = "failed to decode %s catalog"
	ErrMsgUnsupportedFmt   = "unsupported catalog format %q"
	ErrMsgVersionMismatch  = "catalog version %d is not supported (want %d)"
	ErrMsgNoCrops          = "catalog defines no crops"
	ErrMsgDuplicateCrop    = "duplicate crop id %q"
	ErrMsgAmbiguousName    = "crop name or alias %q maps to both %q and %q"
	ErrMsgInvalidCropField = "crop %q: %s"
	ErrMsgUpgradeGap       = "upgrade table must cover levels %d..%d without gaps, missing %d"
	ErrMsgReclaimOrder     = "reclaim cost must strictly increase: plot count %d costs %d, previous %d"
	ErrMsgReclaimStart     = "reclaim table must start at initial plot count %d, got %d"
	ErrMsgReclaimGap       = "reclaim table must be contiguous, missing plot count %d"
	ErrMsgMilestoneCrop    = "sign-in milestone day %d grants unknown crop %q"
	ErrMsgNegativeValue    = "%s must not be negative"
)
