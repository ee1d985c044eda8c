package watch

// Config describes one marketplace watch, loaded from a YAML file in the
// watches directory. The watch name is derived from the filename.
type Config struct {
	Name     string         `yaml:"-"`
	Keywords string         `yaml:"keywords"`
	MaxPrice *float64       `yaml:"max_price,omitempty"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled  bool `yaml:"enabled"`
	Interval int  `yaml:"interval"` // seconds between poll cycles
}
