// Package config provides configuration management for Hadeed.
//
// Configuration is loaded from, in increasing order of precedence:
//
//   - Built-in defaults
//   - The YAML file $HADEED_CONFIG_PATH/hadeed.yml (default /etc/hadeed)
//   - A .env file in the working directory (or $HADEED_ENV_FILE)
//   - Environment variables
//
// # Key Configuration Options
//
//   - HADEED_STORE_BACKEND: supabase (default) or postgres
//   - SUPABASE_URL, SUPABASE_ANON_KEY: Supabase project; the NEXT_PUBLIC_
//     prefixed names are accepted as well
//   - DATABASE_URL: PostgreSQL connection for the postgres backend
//   - HADEED_LOG_LEVEL: Logging verbosity
//
// Validate returns a *ConfigurationError when a required value is missing.
package config
