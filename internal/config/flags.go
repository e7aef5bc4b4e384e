package config

import "flag"

// Flags holds command-line overrides, the outermost layer in the
// file → environment → flag precedence chain.
type Flags struct {
	Address  string
	DBType   string
	DBPath   string
	SiteURL  string
}

// ParseFlags registers and parses the subset of settings operators most
// commonly override at the command line. Unset flags (empty string) leave
// the underlying config value untouched.
func ParseFlags(args []string) Flags {
	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	var f Flags
	fs.StringVar(&f.Address, "address", "", "HTTP listen address, e.g. :8080")
	fs.StringVar(&f.DBType, "db-type", "", "database backend: sqlite, postgres, mysql")
	fs.StringVar(&f.DBPath, "db-path", "", "sqlite database file path")
	fs.StringVar(&f.SiteURL, "site-url", "", "public base URL used to build short links")
	_ = fs.Parse(args)
	return f
}

// ApplyTo overlays non-empty flag values onto cfg.
func (f Flags) ApplyTo(cfg *Config) {
	if f.Address != "" {
		cfg.Server.Address = f.Address
	}
	if f.SiteURL != "" {
		cfg.Server.SiteURL = f.SiteURL
	}
	if f.DBType != "" {
		cfg.Database.Type = DatabaseType(f.DBType)
	}
	if f.DBPath != "" {
		cfg.Database.Sqlite.Path = f.DBPath
	}
}
