package domain

type ScoreKey string

const (
	ScoreAPIMaturity      ScoreKey = "apiMaturity"
	ScoreAuditReadiness   ScoreKey = "auditReadiness"
	ScoreReportingCadence ScoreKey = "reportingCadence"
)

// ScoreKeys is the fixed iteration order for score keys.
var ScoreKeys = []ScoreKey{ScoreAPIMaturity, ScoreAuditReadiness, ScoreReportingCadence}

type GraphMode string

const (
	ModeCountry GraphMode = "country"
	ModeGlobal  GraphMode = "global"
)

type NodeGroup string

const (
	GroupCountry   NodeGroup = "country"
	GroupRegulator NodeGroup = "reg"
)

// AllCategories disables the category filter.
const AllCategories = "__all__"

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)
