package mode

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Smart runs a keyword-driven multi-platform search with ranked candidates.
	Smart Mode = "smart"
	// Matrix checks a single username against every known platform.
	Matrix Mode = "matrix"
	// Domain searches domain names seeded by a keyword.
	Domain Mode = "domain"
	// Random checks generated candidates of a fixed length.
	Random Mode = "random"
	// Forecast derives a local statement without touching the network.
	Forecast Mode = "forecast"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Smart || m == Matrix || m == Domain || m == Random || m == Forecast
}

// All returns the supported modes in their stable default order.
func All() []Mode {
	return []Mode{Smart, Matrix, Domain, Random, Forecast}
}
