package model

// Frequency is the recurrence period of a maintenance template or schedule entry.
type Frequency string

const (
	FrequencyDaily      Frequency = "Daily"
	FrequencyWeekly     Frequency = "Weekly"
	FrequencyMonthly    Frequency = "Monthly"
	FrequencyHalfYearly Frequency = "Half-Yearly"
	FrequencyYearly     Frequency = "Yearly"
)

// Frequencies lists every frequency in display order.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyHalfYearly,
	FrequencyYearly,
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}
