package job

const ProviderStatementImport Provider = "statement-import"

// ImportConfig describes an invocation of the external statement importer.
// The importer's command line is a stable contract: one positional archive
// directory plus --odoo-url, --db, --username and --password.
type ImportConfig struct {
	Interpreter string `mapstructure:"interpreter" json:"interpreter"`
	Script      string `mapstructure:"script" json:"script"`
	ArchiveDir  string `mapstructure:"archive_dir" json:"archive_dir"`

	URL      string `mapstructure:"url" json:"url"`
	Database string `mapstructure:"database" json:"database"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`

	LogFile string `mapstructure:"log_file" json:"log_file"`
	Debug   bool   `mapstructure:"debug" json:"debug"`

	// TestConnection runs the importer's --test-connection probe before the
	// real import and aborts when the accounting system rejects the
	// credentials.
	TestConnection bool `mapstructure:"test_connection" json:"test_connection"`

	// RequireFreshSync refuses to import unless the mirror job left a sync
	// marker no older than MaxSyncAge.
	RequireFreshSync bool     `mapstructure:"require_fresh_sync" json:"require_fresh_sync"`
	MaxSyncAge       Duration `mapstructure:"max_sync_age" json:"max_sync_age"`
}

func (c *ImportConfig) Type() Provider { return ProviderStatementImport }

func (c *ImportConfig) Validate() error {
	var r requiredFields
	r.want("interpreter", c.Interpreter)
	r.want("script", c.Script)
	r.want("archive_dir", c.ArchiveDir)
	r.want("url", c.URL)
	r.want("database", c.Database)
	r.want("username", c.Username)
	r.want("password", c.Password)
	r.want("log_file", c.LogFile)
	return r.err()
}
