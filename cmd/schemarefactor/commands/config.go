package commands

import "github.com/spf13/viper"

// defaultSchemaPath is where Prisma projects conventionally keep their
// schema. Positional arguments and --schema take precedence, then
// SCHEMAREFACTOR_SCHEMA from the environment.
const defaultSchemaPath = "prisma/schema.prisma"

func init() {
	viper.SetDefault("schema", defaultSchemaPath)
	viper.SetEnvPrefix("schemarefactor")
	viper.AutomaticEnv()
}
