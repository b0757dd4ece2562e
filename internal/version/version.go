// ABOUTME: Version constants for sampleflow
// ABOUTME: Reported at startup by the player and the stream server
package version

const (
	// Version is the release version
	Version = "0.1.0"

	// Product is the product name
	Product = "sampleflow"

	// Manufacturer identifies the maintainers
	Manufacturer = "Resonate Protocol"
)
