package config

const (
	EnvPrefix = "netrix"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "NETRIX_DB_DSN"
	EnvDBHost = "NETRIX_DB_HOST"
	EnvDBUser = "NETRIX_DB_USER"
	EnvDBName = "NETRIX_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
