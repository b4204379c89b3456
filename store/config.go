package store

// DefaultTableName is the table used when none is configured.
const DefaultTableName = "booksTable"

// Config holds configuration for the Store.
type Config struct {
	// TableName is the DynamoDB table holding the catalog.
	// Default: "booksTable"
	TableName string
}

// DefaultConfig returns the configuration used by the deployed service.
func DefaultConfig() Config {
	return Config{
		TableName: DefaultTableName,
	}
}

// validate fills in defaults for unset values.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = DefaultTableName
	}
}
