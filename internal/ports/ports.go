package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	ForecastProvider ForecastProvider
	LookupMetrics    LookupMetrics

	// Session
	SessionStore SessionStore

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
}
