package config

import "time"

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Combat sounds
	SoundShot
	SoundEnemyHit
	SoundEnemyKill
	SoundBossSpawn
	// Player sounds
	SoundPlayerDamage
	SoundPlayerDeath
)

// Waveforms understood by the cue synthesiser
const (
	WaveSine     = "sine"
	WaveSquare   = "square"
	WaveSaw      = "sawtooth"
	WaveTriangle = "triangle"
	WaveNoise    = "noise"
)

// CueConfig describes a synthesised effect: a sweep from StartFreq to EndFreq
type CueConfig struct {
	Wave      string
	StartFreq float64
	EndFreq   float64
	Duration  time.Duration
	Volume    float64
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	BufferSize    time.Duration // Speaker buffer
	DefaultSFXVol float64
	MaxPending    int // Cues queued per tick beyond this are dropped
}

// SoundConfig maps sound IDs to cue definitions
type SoundConfig struct {
	Cues map[SoundID][]CueConfig // Layers played together
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		BufferSize:    50 * time.Millisecond,
		DefaultSFXVol: 1.0,
		MaxPending:    8,
	}

	Sound = SoundConfig{
		Cues: map[SoundID][]CueConfig{
			SoundShot: {
				{Wave: WaveSquare, StartFreq: 900, EndFreq: 600, Duration: 40 * time.Millisecond, Volume: 0.1},
			},
			SoundEnemyHit: {
				{Wave: WaveSquare, StartFreq: 300, EndFreq: 100, Duration: 150 * time.Millisecond, Volume: 0.3},
			},
			SoundEnemyKill: {
				{Wave: WaveNoise, StartFreq: 1000, EndFreq: 50, Duration: 300 * time.Millisecond, Volume: 0.2},
				{Wave: WaveSine, StartFreq: 100, EndFreq: 30, Duration: 250 * time.Millisecond, Volume: 0.4},
			},
			SoundBossSpawn: {
				{Wave: WaveSaw, StartFreq: 60, EndFreq: 120, Duration: 800 * time.Millisecond, Volume: 0.4},
			},
			SoundPlayerDamage: {
				{Wave: WaveSaw, StartFreq: 200, EndFreq: 50, Duration: 350 * time.Millisecond, Volume: 0.5},
				{Wave: WaveSine, StartFreq: 400, EndFreq: 100, Duration: 350 * time.Millisecond, Volume: 0.5},
			},
			SoundPlayerDeath: {
				{Wave: WaveTriangle, StartFreq: 400, EndFreq: 40, Duration: 1200 * time.Millisecond, Volume: 0.6},
			},
		},
	}
}
