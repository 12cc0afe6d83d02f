package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Players  int            `mapstructure:"players"`
	Map      MapConfig      `mapstructure:"map"`
	FogOfWar FogOfWarConfig `mapstructure:"fog_of_war"`
	Units    UnitsConfig    `mapstructure:"units"`
	Costs    CostsConfig    `mapstructure:"costs"`
	Combat   CombatConfig   `mapstructure:"combat"`
	Economy  EconomyConfig  `mapstructure:"economy"`
}

// MapConfig holds map generation settings
type MapConfig struct {
	Size           int     `mapstructure:"size"`
	NoiseFrequency float64 `mapstructure:"noise_frequency"`
	NoiseOctaves   int     `mapstructure:"noise_octaves"`
}

// FogOfWarConfig holds fog of war settings
type FogOfWarConfig struct {
	VisibilityRadius int `mapstructure:"visibility_radius"`
}

// UnitsConfig holds unit stats
type UnitsConfig struct {
	ArmyHitPoints int `mapstructure:"army_hit_points"`
	CaptureRadius int `mapstructure:"capture_radius"`
}

// CostsConfig holds production and technology prices
type CostsConfig struct {
	Worker     int `mapstructure:"worker"`
	Army       int `mapstructure:"army"`
	City       int `mapstructure:"city"`
	Technology int `mapstructure:"technology"`
}

// CombatConfig holds combat resolution tuning
type CombatConfig struct {
	DamageScale      float64 `mapstructure:"damage_scale"`
	CityDefenseBonus float64 `mapstructure:"city_defense_bonus"`
	TechIncrement    float64 `mapstructure:"tech_increment"`
}

// EconomyConfig holds harvest and upkeep settings
type EconomyConfig struct {
	TradeRouteBonus int `mapstructure:"trade_route_bonus"`
	FoodPerUnit     int `mapstructure:"food_per_unit"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	GameServer GameServerConfig `mapstructure:"game_server"`
}

// GameServerConfig holds game server specific configuration
type GameServerConfig struct {
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
	Demo      DemoConfig    `mapstructure:"demo"`
	Monitor   MonitorConfig `mapstructure:"monitor"`
}

// MonitorConfig holds match monitoring settings
type MonitorConfig struct {
	StarvationAlert int `mapstructure:"starvation_alert"`
	ReportEvery     int `mapstructure:"report_every"`
}

// DemoConfig holds demo mode configuration
type DemoConfig struct {
	BoardSize int   `mapstructure:"board_size"`
	Players   int   `mapstructure:"players"`
	MaxTurns  int   `mapstructure:"max_turns"`
	Seed      int64 `mapstructure:"seed"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
	ShowAllTiles   bool `mapstructure:"show_all_tiles"`
}

var (
	// mu guards the global config pointer and the viper instance. A loaded
	// *Config is never mutated; updates build a new one and swap it in.
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.players", 4)

	v.SetDefault("game.map.size", 32)
	v.SetDefault("game.map.noise_frequency", 0.18)
	v.SetDefault("game.map.noise_octaves", 3)

	v.SetDefault("game.fog_of_war.visibility_radius", 3)

	v.SetDefault("game.units.army_hit_points", 100)
	v.SetDefault("game.units.capture_radius", 2)

	v.SetDefault("game.costs.worker", 10)
	v.SetDefault("game.costs.army", 20)
	v.SetDefault("game.costs.city", 50)
	v.SetDefault("game.costs.technology", 20)

	v.SetDefault("game.combat.damage_scale", 60.0)
	v.SetDefault("game.combat.city_defense_bonus", 0.5)
	v.SetDefault("game.combat.tech_increment", 0.25)

	v.SetDefault("game.economy.trade_route_bonus", 2)
	v.SetDefault("game.economy.food_per_unit", 1)

	v.SetDefault("server.game_server.log_level", "info")
	v.SetDefault("server.game_server.log_format", "console")
	v.SetDefault("server.game_server.demo.board_size", 8)
	v.SetDefault("server.game_server.demo.players", 2)
	v.SetDefault("server.game_server.demo.max_turns", 40)
	v.SetDefault("server.game_server.demo.seed", 0)
	v.SetDefault("server.game_server.monitor.starvation_alert", 3)
	v.SetDefault("server.game_server.monitor.report_every", 10)

	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_all_tiles", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()

	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/territory")
	}

	nv.SetEnvPrefix("TERRITORY")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for discovered
		// locations only ConfigFileNotFoundError is tolerated.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next, err := decode(nv)
	if err != nil {
		return err
	}

	mu.Lock()
	v, cfg = nv, next
	mu.Unlock()
	return nil
}

// decode builds and validates a fresh Config from the current viper state
func decode(vp *viper.Viper) (*Config, error) {
	next := &Config{}
	if err := vp.Unmarshal(next); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return next, nil
}

// Get returns the current config snapshot. Callers must treat it as
// read-only; a reload swaps in a new snapshot rather than editing this one.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml on top of the loaded
// config. The merged result must validate; otherwise the previous values
// stay in effect and the error is returned.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}
	Get()

	mu.Lock()
	defer mu.Unlock()

	envFile := fmt.Sprintf("config.%s.yaml", env)
	base := v.ConfigFileUsed()
	prev := v.AllSettings()

	v.SetConfigFile(envFile)
	err := v.MergeInConfig()
	v.SetConfigFile(base)
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
		return nil
	}

	next, err := decode(v)
	if err != nil {
		_ = v.MergeConfigMap(prev)
		return fmt.Errorf("environment config %s: %w", envFile, err)
	}
	cfg = next
	return nil
}

// Set allows runtime config updates. A value that does not decode or
// validate is rolled back and reported.
func Set(key string, value interface{}) error {
	Get()

	mu.Lock()
	defer mu.Unlock()

	prev := v.Get(key)
	v.Set(key, value)
	next, err := decode(v)
	if err != nil {
		v.Set(key, prev)
		return fmt.Errorf("set %s: %w", key, err)
	}
	cfg = next
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return GetViper().GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return GetViper().GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Each valid change
// swaps in a new snapshot for later Get calls; changes that fail
// validation are ignored and the previous values stay in effect. Games
// copy their rules when they are built, so a reload only reaches settings
// read afterwards, such as log level and demo options.
func WatchConfig(onChange func(err error)) {
	watched := GetViper()
	watched.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		var err error
		if v == watched {
			var next *Config
			if next, err = decode(watched); err == nil {
				cfg = next
			}
		} else {
			err = fmt.Errorf("config %s was replaced before reload", e.Name)
		}
		mu.Unlock()

		if onChange != nil {
			onChange(err)
		}
	})
	watched.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.Players < 1 || c.Game.Players > 4 {
		return fmt.Errorf("game.players must be between 1 and 4")
	}
	if c.Game.Map.Size < 2 {
		return fmt.Errorf("game.map.size must be at least 2")
	}
	if c.Game.Map.Size%2 != 0 {
		return fmt.Errorf("game.map.size must be even")
	}
	if c.Game.Map.NoiseFrequency <= 0 {
		return fmt.Errorf("game.map.noise_frequency must be positive")
	}
	if c.Game.Map.NoiseOctaves < 1 {
		return fmt.Errorf("game.map.noise_octaves must be at least 1")
	}
	if c.Game.FogOfWar.VisibilityRadius < 0 {
		return fmt.Errorf("game.fog_of_war.visibility_radius must be non-negative")
	}
	if c.Game.Units.ArmyHitPoints <= 0 {
		return fmt.Errorf("game.units.army_hit_points must be positive")
	}
	if c.Game.Units.CaptureRadius < 0 {
		return fmt.Errorf("game.units.capture_radius must be non-negative")
	}

	costs := map[string]int{
		"game.costs.worker":     c.Game.Costs.Worker,
		"game.costs.army":       c.Game.Costs.Army,
		"game.costs.city":       c.Game.Costs.City,
		"game.costs.technology": c.Game.Costs.Technology,
	}
	for name, cost := range costs {
		if cost < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}

	if c.Game.Combat.DamageScale <= 0 {
		return fmt.Errorf("game.combat.damage_scale must be positive")
	}
	if c.Game.Combat.CityDefenseBonus < 0 {
		return fmt.Errorf("game.combat.city_defense_bonus must be non-negative")
	}
	if c.Game.Combat.TechIncrement <= 0 {
		return fmt.Errorf("game.combat.tech_increment must be positive")
	}
	if c.Game.Economy.TradeRouteBonus < 0 {
		return fmt.Errorf("game.economy.trade_route_bonus must be non-negative")
	}
	if c.Game.Economy.FoodPerUnit < 0 {
		return fmt.Errorf("game.economy.food_per_unit must be non-negative")
	}

	demo := c.Server.GameServer.Demo
	if demo.BoardSize < 2 || demo.BoardSize%2 != 0 {
		return fmt.Errorf("server.game_server.demo.board_size must be an even number of at least 2")
	}
	if demo.Players < 1 || demo.Players > 4 {
		return fmt.Errorf("server.game_server.demo.players must be between 1 and 4")
	}
	if demo.MaxTurns <= 0 {
		return fmt.Errorf("server.game_server.demo.max_turns must be positive")
	}

	monitor := c.Server.GameServer.Monitor
	if monitor.StarvationAlert < 0 || monitor.ReportEvery < 0 {
		return fmt.Errorf("server.game_server.monitor settings must be non-negative")
	}

	return nil
}
