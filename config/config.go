// Package config holds the engine tunables. Values are explicit and passed
// in; nothing here is ambient mutable state.
package config

// PhysicsConfig contains the height-resolution constants. Units: tiles for
// horizontal speeds, height units for vertical values, per tick.
type PhysicsConfig struct {
	// Gravity is the fall rate of an airborne entity.
	Gravity float64 `yaml:"gravity"`
	// StepHeight is the largest ledge an entity walks up without jumping.
	StepHeight float64 `yaml:"step_height"`
	// GroundEpsilon separates "airborne" from "snap to floor".
	GroundEpsilon float64 `yaml:"ground_epsilon"`
	// JumpHeight is the total ascent of a jump.
	JumpHeight float64 `yaml:"jump_height"`
	// JumpSpeed is the ascent per tick while jumping.
	JumpSpeed float64 `yaml:"jump_speed"`
}

// PlayerConfig contains player movement tunables.
type PlayerConfig struct {
	Speed float64 `yaml:"speed"`
	// PushSpeed is how fast pushed crates and rolling boulders slide.
	PushSpeed float64 `yaml:"push_speed"`
}

// ChestConfig contains chest behavior tunables.
type ChestConfig struct {
	// OpenTicks is how long the opening animation holds before the chest is
	// opened and its item granted.
	OpenTicks int `yaml:"open_ticks"`
}

// RoomsConfig controls room resource handling.
type RoomsConfig struct {
	// Dir is the room resource directory for file-system loaders.
	Dir string `yaml:"dir"`
	// CacheSize is how many parsed rooms to keep for backtracking.
	CacheSize int `yaml:"cache_size"`
}

// Config is the full engine configuration.
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Chest   ChestConfig   `yaml:"chest"`
	Rooms   RoomsConfig   `yaml:"rooms"`

	// TickRate is ticks per second for wall-clock hosts.
	TickRate int `yaml:"tick_rate"`

	// Strict makes out-of-bounds terrain queries during movement fatal
	// instead of clamped-and-logged. Debug builds run strict.
	Strict bool `yaml:"strict"`
}

// Default returns the tuning the original game shipped with, normalized to
// tile/height units at 60 ticks per second.
func Default() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:       0.1875, // 3 px per frame over 16 px tiles
			StepHeight:    1.0,
			GroundEpsilon: 0.0625, // one pixel
			JumpHeight:    1.5,
			JumpSpeed:     0.125,
		},
		Player: PlayerConfig{
			Speed:     0.125, // 2 px per frame over 16 px tiles
			PushSpeed: 0.0625,
		},
		Chest: ChestConfig{
			OpenTicks: 12,
		},
		Rooms: RoomsConfig{
			Dir:       "data/rooms",
			CacheSize: 4,
		},
		TickRate: 60,
	}
}
