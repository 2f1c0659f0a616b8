package constants

// DefaultEnvPath is the default path to the .env file
const DefaultEnvPath = "./.env"

// DefaultConfigPath is the default path to the config.toml file
const DefaultConfigPath = "~/.cronplan/config.toml"

// DefaultPlanPath is the default path written by quickstart
const DefaultPlanPath = "./schedule.toml"
