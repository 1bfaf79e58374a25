package api

type ServerConfig struct {
	Provider ProviderConfig
	DB       DBConfig
}

type ProviderConfig struct {
	// ID is the federation component identity embedded in every storage id.
	ID string
	// Realm is the host realm this admin surface reports against.
	Realm string
	// AddRolesToToken is declared for configuration compatibility and not
	// consulted by any validation logic.
	AddRolesToToken bool
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     int
	Database string
	Schema   string

	// AutoMigrate creates the users tables on startup. Meant for demo and
	// test deployments; production schemas are provisioned externally.
	AutoMigrate bool
}
