package willowxr

import (
	"fmt"
	"math"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// envPrefix namespaces every environment variable read by ConfigFromEnv.
const envPrefix = "WILLOWXR_"

// Config holds the tunable constants of the engine. Start from
// DefaultConfig and override what you need; the zero Config is not useful.
type Config struct {
	Profile Profile `toml:"profile" envPrefix:"PROFILE_"`

	// Calibration offsets applied to each raw controller pose, in the
	// controller's own frame, before any query.
	LeftCalibration  Vec3 `toml:"left_calibration"`
	RightCalibration Vec3 `toml:"right_calibration"`

	// Implement geometry: the tip child sits at TipOffset with size
	// ImplementSize; strikes are tested StrikeOffset further along.
	TipOffset     Vec3 `toml:"tip_offset"`
	ImplementSize Vec3 `toml:"implement_size"`
	StrikeOffset  Vec3 `toml:"strike_offset"`

	// FollowOffset places the target in front of the controller under
	// PolicyFollow.
	FollowOffset Vec3 `toml:"follow_offset"`

	RotationPolicy RotationPolicy `toml:"rotation_policy" env:"ROTATION_POLICY"`

	// SnapThresholdDeg gates PolicyDiscreteSnap; SnapStepDeg is the fixed
	// turn applied per snap.
	SnapThresholdDeg float64 `toml:"snap_threshold_deg" env:"SNAP_THRESHOLD_DEG"`
	SnapStepDeg      float64 `toml:"snap_step_deg" env:"SNAP_STEP_DEG"`

	// SelfExclusion keeps active implements out of manipulation queries.
	// Strike queries always exclude implements.
	SelfExclusion bool `toml:"self_exclusion" env:"SELF_EXCLUSION"`

	Debug bool `toml:"debug" env:"DEBUG"`
}

// DefaultConfig returns the constants of the reference drum scene.
func DefaultConfig() Config {
	return Config{
		Profile:          ProfileVR,
		LeftCalibration:  Vec3{0.006, 0, 0},
		RightCalibration: Vec3{-0.001, 0, 0},
		TipOffset:        Vec3{0, 0, -0.3},
		ImplementSize:    Vec3{0.014, 0.014, 0.4},
		StrikeOffset:     Vec3{0, 0, -0.5},
		FollowOffset:     Vec3{0, 0, -0.1},
		RotationPolicy:   PolicyContinuousAim,
		SnapThresholdDeg: 3,
		SnapStepDeg:      15,
		SelfExclusion:    true,
	}
}

// snapThreshold returns the snap gate in radians.
func (c Config) snapThreshold() float64 {
	return c.SnapThresholdDeg * math.Pi / 180
}

// snapStep returns the snap increment in radians.
func (c Config) snapStep() float64 {
	return c.SnapStepDeg * math.Pi / 180
}

// calibration returns the calibration offset for a hand.
func (c Config) calibration(h Hand) Vec3 {
	if h == HandLeft {
		return c.LeftCalibration
	}
	return c.RightCalibration
}

// LoadConfig parses TOML over DefaultConfig. Keys that are absent keep their
// default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ConfigFromEnv overlays WILLOWXR_* environment variables on base, for
// example WILLOWXR_PROFILE_ROTATE_BUTTON=3 or WILLOWXR_ROTATION_POLICY=snap.
func ConfigFromEnv(base Config) (Config, error) {
	cfg := base
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.SnapThresholdDeg < 0 {
		return fmt.Errorf("snap_threshold_deg must be >= 0, got %v", c.SnapThresholdDeg)
	}
	if c.SnapStepDeg <= 0 {
		return fmt.Errorf("snap_step_deg must be > 0, got %v", c.SnapStepDeg)
	}
	if s := c.ImplementSize; s[0] == 0 || s[1] == 0 || s[2] == 0 {
		return fmt.Errorf("implement_size must be non-zero on every axis, got %v", s)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p RotationPolicy) MarshalText() ([]byte, error) {
	switch p {
	case PolicyContinuousAim:
		return []byte("aim"), nil
	case PolicyDiscreteSnap:
		return []byte("snap"), nil
	case PolicyFollow:
		return []byte("follow"), nil
	default:
		return nil, fmt.Errorf("unknown rotation policy %d", p)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. Accepted values are
// "aim", "snap" and "follow".
func (p *RotationPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "aim", "continuous-aim":
		*p = PolicyContinuousAim
	case "snap", "discrete-snap":
		*p = PolicyDiscreteSnap
	case "follow":
		*p = PolicyFollow
	default:
		return fmt.Errorf("unknown rotation policy %q", text)
	}
	return nil
}

// String returns the policy's config name.
func (p RotationPolicy) String() string {
	b, err := p.MarshalText()
	if err != nil {
		return "unknown"
	}
	return string(b)
}
