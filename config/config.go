package config

import (
	"math"
	"time"
)

// EnemyType names an enemy archetype. The names double as TOML keys.
type EnemyType string

const (
	EnemyWeak   EnemyType = "weak"
	EnemyMedium EnemyType = "medium"
	EnemyStrong EnemyType = "strong"
	EnemyBoss   EnemyType = "boss"
)

// GestureConfig contains hand pose interpretation values
type GestureConfig struct {
	Mode       string `toml:"mode"`        // "one_hand" or "two_hand"
	CameraHand string `toml:"camera_hand"` // Handedness label of the camera hand in two-hand mode

	// Cursor
	CursorSmoothing float64 `toml:"cursor_smoothing"` // EMA factor applied to the index tip
	MirrorCursor    bool    `toml:"mirror_cursor"`    // Selfie view: cursor = 1 - landmark

	// Tracking loss
	LostGrace time.Duration `toml:"lost_grace"` // Hand absent longer than this => inactive

	// Orientation
	EdgeOnRatio float64 `toml:"edge_on_ratio"` // |z| must exceed this times max(|x|,|y|)

	// Fire rules
	PinchThreshold   float64 `toml:"pinch_threshold"`   // Edge-on normalized pinch distance
	PinchHysteresis  float64 `toml:"pinch_hysteresis"`  // Extra distance needed to release
	FaceOnCosine     float64 `toml:"face_on_cosine"`    // Thumb/index cosine for face-on fire
	CosineHysteresis float64 `toml:"cosine_hysteresis"` // Cosine drop needed to release
	FaceOnPinchBound float64 `toml:"face_on_pinch"`     // Secondary pinch bound for face-on fire

	// Depth hints (hand scale in normalized image units)
	TooCloseScale float64 `toml:"too_close_scale"`
	TooFarScale   float64 `toml:"too_far_scale"`

	// PinchStrengthRange is the raw thumb/index distance mapped to strength 0..1
	PinchStrengthRange float64 `toml:"pinch_strength_range"`
}

// BeatConfig contains onset detection values
type BeatConfig struct {
	Strategy string `toml:"strategy"` // "rolling" or "calibrated"

	// Rolling window
	WindowSize     int     `toml:"window_size"`
	Multiplier     float64 `toml:"multiplier"`
	AdditiveMargin float64 `toml:"additive_margin"`

	// Calibration window
	CalibrationDuration   time.Duration `toml:"calibration_duration"`
	CalibrationMultiplier float64       `toml:"calibration_multiplier"`

	// Gates shared by every strategy
	NoiseFloor    float64       `toml:"noise_floor"`
	Cooldown      time.Duration `toml:"cooldown"`
	PulseDuration time.Duration `toml:"pulse_duration"`
	PulseDecay    time.Duration `toml:"pulse_decay"` // Length of the intensity envelope
}

// AnalyserConfig mirrors a browser analyser node
type AnalyserConfig struct {
	FFTSize      int     `toml:"fft_size"`
	Smoothing    float64 `toml:"smoothing"`
	MinDecibels  float64 `toml:"min_decibels"`
	MaxDecibels  float64 `toml:"max_decibels"`
	LowBandStart int     `toml:"low_band_start"` // First bin of the bass band (inclusive)
	LowBandEnd   int     `toml:"low_band_end"`   // Last bin of the bass band (exclusive)
}

// EnemyTypeConfig contains configuration for specific enemy types
type EnemyTypeConfig struct {
	Name         string  `toml:"name"`
	Health       int     `toml:"health"`
	Speed        float64 `toml:"speed"` // Units per second toward the player
	Size         float64 `toml:"size"`
	Reward       int     `toml:"reward"`        // Score for a kill
	PlayerDamage int     `toml:"player_damage"` // Health taken when it reaches the player
}

// EnemyConfig contains enemy system configuration
type EnemyConfig struct {
	Types          map[EnemyType]EnemyTypeConfig `toml:"types"`
	StandardPool   []EnemyType                   `toml:"standard_pool"` // Types drawn on a beat
	BossType       EnemyType                     `toml:"boss_type"`
	BossInterval   time.Duration                 `toml:"boss_interval"`
	HeightStrategy string                        `toml:"height_strategy"` // "harmonic" or "band"
}

// SceneryConfig places a static obstacle (tree) that blocks shots
type SceneryConfig struct {
	X      float64 `toml:"x"`
	Z      float64 `toml:"z"`
	Radius float64 `toml:"radius"`
	Height float64 `toml:"height"`
}

// ArenaConfig contains the geometry of the play field around the player
type ArenaConfig struct {
	SpawnRadius float64 `toml:"spawn_radius"`
	KillRadius  float64 `toml:"kill_radius"`
	EyeHeight   float64 `toml:"eye_height"`

	// Harmonic height
	CenterHeight float64 `toml:"center_height"`
	BobAmplitude float64 `toml:"bob_amplitude"`
	BobFrequency float64 `toml:"bob_frequency"` // Radians per second

	// Band height (alternate strategy)
	BandMin        float64 `toml:"band_min"`
	BandMax        float64 `toml:"band_max"`
	BandSeparation float64 `toml:"band_separation"`
	BandAttempts   int     `toml:"band_attempts"`

	// Collision space
	Extent   float64 `toml:"extent"` // Half-size of the square collision space
	CellSize int     `toml:"cell_size"`

	Scenery []SceneryConfig `toml:"scenery"`
}

// CombatConfig contains shooting values
type CombatConfig struct {
	Mode            string        `toml:"mode"` // "hitscan" or "projectile"
	FireInterval    time.Duration `toml:"fire_interval"`
	ShotDamage      int           `toml:"shot_damage"`
	ProjectileSpeed float64       `toml:"projectile_speed"` // Units per second
	MaxTravel       float64       `toml:"max_travel"`
	RayStep         float64       `toml:"ray_step"`
	YawScale        float64       `toml:"yaw_scale"`   // Radians of camera yaw per unit of cursor X
	PitchScale      float64       `toml:"pitch_scale"` // Radians of aim pitch per unit of cursor Y
}

// SessionConfig contains session controller values
type SessionConfig struct {
	TickRate      int    `toml:"tick_rate"`
	PlayerHealth  int    `toml:"player_health"`
	SnapshotEvery int    `toml:"snapshot_every"` // Ticks between telemetry snapshots
	Seed          uint64 `toml:"seed"`           // 0 = seed from the clock
}

// PoseConfig contains the pose tracker websocket client values
type PoseConfig struct {
	URL              string        `toml:"url"`
	HandshakeTimeout time.Duration `toml:"handshake_timeout"`
	ReconnectDelay   time.Duration `toml:"reconnect_delay"`
	StaleAfter       time.Duration `toml:"stale_after"` // Frames older than this read as no hands
	MaxMessageSize   int64         `toml:"max_message_size"`
}

// WebConfig contains the telemetry server values
type WebConfig struct {
	Listen string `toml:"listen"` // Empty disables the server
}

// Global configuration instances
var Gesture GestureConfig
var Beat BeatConfig
var Analyser AnalyserConfig
var Enemy EnemyConfig
var Arena ArenaConfig
var Combat CombatConfig
var Session SessionConfig
var Pose PoseConfig
var Web WebConfig

// Gesture modes
const (
	ModeOneHand = "one_hand"
	ModeTwoHand = "two_hand"
)

// Beat strategies
const (
	BeatRolling    = "rolling"
	BeatCalibrated = "calibrated"
)

// Height strategies
const (
	HeightHarmonic = "harmonic"
	HeightBand     = "band"
)

// Combat modes
const (
	CombatHitscan    = "hitscan"
	CombatProjectile = "projectile"
)

func init() {
	Gesture = GestureConfig{
		Mode:       ModeOneHand,
		CameraHand: "Left",

		CursorSmoothing: 0.18,
		MirrorCursor:    true,

		LostGrace: 600 * time.Millisecond,

		EdgeOnRatio: 1.2,

		PinchThreshold:   0.18,
		PinchHysteresis:  0.04,
		FaceOnCosine:     0.4,
		CosineHysteresis: 0.1,
		FaceOnPinchBound: 0.6,

		TooCloseScale: 0.35,
		TooFarScale:   0.07,

		PinchStrengthRange: 0.06,
	}

	Beat = BeatConfig{
		Strategy: BeatRolling,

		WindowSize:     20,
		Multiplier:     1.25,
		AdditiveMargin: 12,

		CalibrationDuration:   10 * time.Second,
		CalibrationMultiplier: 1.8,

		NoiseFloor:    20,
		Cooldown:      200 * time.Millisecond,
		PulseDuration: 50 * time.Millisecond,
		PulseDecay:    250 * time.Millisecond,
	}

	// ~150Hz bass band at 44.1kHz with a 2048 point FFT
	Analyser = AnalyserConfig{
		FFTSize:      2048,
		Smoothing:    0.8,
		MinDecibels:  -100,
		MaxDecibels:  -30,
		LowBandStart: 0,
		LowBandEnd:   8,
	}

	Enemy = EnemyConfig{
		Types: map[EnemyType]EnemyTypeConfig{
			EnemyWeak: {
				Name:         "Snowling",
				Health:       25,
				Speed:        3.0,
				Size:         1.0,
				Reward:       5,
				PlayerDamage: 10,
			},
			EnemyMedium: {
				Name:         "Snowman",
				Health:       50,
				Speed:        2.5,
				Size:         1.4,
				Reward:       10,
				PlayerDamage: 15,
			},
			EnemyStrong: {
				Name:         "Yeti",
				Health:       75,
				Speed:        2.0,
				Size:         1.8,
				Reward:       15,
				PlayerDamage: 20,
			},
			EnemyBoss: {
				Name:         "Horror Snowman",
				Health:       400,
				Speed:        1.2,
				Size:         3.5,
				Reward:       35,
				PlayerDamage: 50,
			},
		},
		StandardPool:   []EnemyType{EnemyWeak, EnemyMedium, EnemyStrong},
		BossType:       EnemyBoss,
		BossInterval:   60 * time.Second,
		HeightStrategy: HeightHarmonic,
	}

	Arena = ArenaConfig{
		SpawnRadius: 25,
		KillRadius:  1.5,
		EyeHeight:   1.6,

		CenterHeight: 1.6,
		BobAmplitude: 0.4,
		BobFrequency: 2.0,

		BandMin:        0.8,
		BandMax:        3.0,
		BandSeparation: 0.6,
		BandAttempts:   10,

		Extent:   40,
		CellSize: 2,

		// Tree ring from the original forest layout
		Scenery: []SceneryConfig{
			{X: 5, Z: -5, Radius: 0.6, Height: 4},
			{X: -7, Z: -10, Radius: 0.6, Height: 4},
			{X: 12, Z: 5, Radius: 0.6, Height: 4},
			{X: -3, Z: 8, Radius: 0.6, Height: 4},
			{X: 8, Z: -15, Radius: 0.6, Height: 4},
			{X: -10, Z: 3, Radius: 0.6, Height: 4},
			{X: 15, Z: -8, Radius: 0.6, Height: 4},
			{X: -5, Z: -12, Radius: 0.6, Height: 4},
			{X: 0, Z: 15, Radius: 0.6, Height: 4},
			{X: -15, Z: -3, Radius: 0.6, Height: 4},
			{X: 10, Z: 12, Radius: 0.6, Height: 4},
			{X: -8, Z: 10, Radius: 0.6, Height: 4},
			{X: 6, Z: -20, Radius: 0.6, Height: 4},
		},
	}

	Combat = CombatConfig{
		Mode:            CombatHitscan,
		FireInterval:    100 * time.Millisecond,
		ShotDamage:      25,
		ProjectileSpeed: 35,
		MaxTravel:       50,
		RayStep:         0.25,
		YawScale:        5 * math.Pi, // ~900 degrees over the full cursor range
		PitchScale:      0.6,
	}

	Session = SessionConfig{
		TickRate:      60,
		PlayerHealth:  100,
		SnapshotEvery: 6,
	}

	Pose = PoseConfig{
		URL:              "ws://localhost:8765/pose",
		HandshakeTimeout: 10 * time.Second,
		ReconnectDelay:   time.Second,
		StaleAfter:       250 * time.Millisecond,
		MaxMessageSize:   64 * 1024,
	}

	Web = WebConfig{
		Listen: ":8080",
	}
}
