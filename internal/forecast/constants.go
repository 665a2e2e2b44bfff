package forecast

// Model parameters. They are fixed per deployment; config may override the
// growth cap and the model kind only.
const (
	// ForecastHorizon is the number of days projected past the last observed day
	ForecastHorizon = 30

	// DefaultGrowthCap is the capacity ceiling of the logistic trend, in currency units per day
	DefaultGrowthCap = 10000.0

	// ChangepointPriorScale controls trend flexibility; lower values keep the trend smooth
	ChangepointPriorScale = 0.01

	// MaxChangepoints is the number of potential trend changepoints
	MaxChangepoints = 25

	// ChangepointRange is the leading share of history where changepoints may be placed
	ChangepointRange = 0.8

	// MonthlyPeriod is the period of the monthly seasonal component, in days
	MonthlyPeriod = 30.5

	// MonthlyFourierOrder is the number of harmonics of the monthly component
	MonthlyFourierOrder = 5

	// SeasonalityPriorScale is the normal prior scale of seasonal coefficients
	SeasonalityPriorScale = 10.0

	// HolidaysPriorScale is the normal prior scale of holiday coefficients
	HolidaysPriorScale = 10.0

	// HolidayHorizonYears is the number of consecutive years covered by the holiday table
	HolidayHorizonYears = 3

	// SubscriptionCategory marks recurring subscription spending (case-insensitive)
	SubscriptionCategory = "subscription"
)

// Messages returned to API callers.
const (
	MsgMissingHistory      = "Invalid input: 'history' key not found."
	MsgEmptyHistory        = "No historical data provided."
	MsgInsufficientHistory = "Not enough historical data to make a prediction."
)
