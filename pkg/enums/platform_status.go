package enums

// PlatformStatus marks whether a streaming platform is offered in the catalog.
type PlatformStatus string

const (
	PlatformStatusActive   PlatformStatus = "active"
	PlatformStatusInactive PlatformStatus = "inactive"
)

// IsValid reports whether the value is a known PlatformStatus.
func (p PlatformStatus) IsValid() bool {
	return p == PlatformStatusActive || p == PlatformStatusInactive
}
