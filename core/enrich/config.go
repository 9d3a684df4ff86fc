package enrich

import "fmt"

// HourRange is an inclusive range of hours of the day.
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r HourRange) contains(hour int) bool {
	return hour >= r.Start && hour <= r.End
}

// Config defines the feature-derivation parameters.
type Config struct {
	// NearShiftEndSeconds is the window before a courier's last dispatch of
	// the day within which a dispatch counts as near the shift end.
	NearShiftEndSeconds int `json:"near_shift_end_seconds"`
	// PeakHourRanges mark the lunch and dinner rushes.
	PeakHourRanges []HourRange `json:"peak_hour_ranges"`
	// CausalRejectionRate switches the historical rejection rate from the
	// lifetime mean to a strictly-before-dispatch prefix mean. The lifetime
	// mean is what the produced dataset has always carried and is the
	// default; it leaks future behaviour into each row, so environments that
	// need a causal signal should enable this.
	CausalRejectionRate bool `json:"causal_rejection_rate"`
	// BuildTimeoutSeconds bounds the construction phase. Zero disables the
	// timeout. Queries are unaffected.
	BuildTimeoutSeconds int `json:"build_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.NearShiftEndSeconds == 0 {
		c.NearShiftEndSeconds = 1800
	}
	if len(c.PeakHourRanges) == 0 {
		c.PeakHourRanges = []HourRange{{Start: 11, End: 13}, {Start: 18, End: 20}}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.NearShiftEndSeconds < 0 {
		return fmt.Errorf("near_shift_end_seconds must not be negative")
	}
	if c.BuildTimeoutSeconds < 0 {
		return fmt.Errorf("build_timeout_seconds must not be negative")
	}
	for _, r := range c.PeakHourRanges {
		if r.Start < 0 || r.End > 23 || r.Start > r.End {
			return fmt.Errorf("invalid peak hour range [%d, %d]", r.Start, r.End)
		}
	}
	return nil
}

func (c Config) isPeakHour(hour int) bool {
	for _, r := range c.PeakHourRanges {
		if r.contains(hour) {
			return true
		}
	}
	return false
}
