package transparency

import "fmt"

// Default thresholds. They were tuned on exported icon assets whose
// backgrounds alternate white and light grey squares.
const (
	DefaultWhiteMin        = 240
	DefaultGreyMaxDiff     = 20
	DefaultGreyMin         = 180
	DefaultLightMin        = 100
	DefaultShaveIterations = 4

	// MaxShaveIterations bounds the shaver so a misconfigured caller cannot
	// erode an entire image one ring at a time.
	MaxShaveIterations = 64
)

// Options configures the color thresholds and shave depth of a Stripper.
//
// All channel comparisons are strict: a channel equal to a threshold does not
// pass it.
type Options struct {
	// WhiteMin is the value every channel must exceed for a pixel to count as
	// near white.
	WhiteMin uint8 `json:"white_min"`

	// GreyMaxDiff is the exclusive upper bound on each pairwise channel
	// difference for a pixel to count as low-saturation grey.
	GreyMaxDiff uint8 `json:"grey_max_diff"`

	// GreyMin is the value the red channel must exceed for a low-saturation
	// pixel to count as a light grey background square.
	GreyMin uint8 `json:"grey_min"`

	// LightMin is the value every channel must exceed for a boundary pixel to
	// be shaved.
	LightMin uint8 `json:"light_min"`

	// ShaveIterations is the maximum number of shaving passes. Zero disables
	// the shaver.
	ShaveIterations int `json:"shave_iterations"`
}

// DefaultOptions returns the thresholds used by NewDefault and the
// package-level helpers.
func DefaultOptions() Options {
	return Options{
		WhiteMin:        DefaultWhiteMin,
		GreyMaxDiff:     DefaultGreyMaxDiff,
		GreyMin:         DefaultGreyMin,
		LightMin:        DefaultLightMin,
		ShaveIterations: DefaultShaveIterations,
	}
}

// Validate reports whether the options can be used as given.
func (o Options) Validate() error {
	if o.ShaveIterations < 0 || o.ShaveIterations > MaxShaveIterations {
		return fmt.Errorf("shave iterations %d outside range 0-%d", o.ShaveIterations, MaxShaveIterations)
	}
	return nil
}
