package cfg

import "time"

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port           string
	WatchesDir     string
	ProductsFile   string
	RetentionHours int

	// Marketplace configuration
	MarketplaceURL string
	Timeout        int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

// RetentionWindow is how long a scraped listing stays in the store, as
// configured via --retention-hours. The flag's default is the single source
// of the retention policy.
func (c *Cfg) RetentionWindow() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}
