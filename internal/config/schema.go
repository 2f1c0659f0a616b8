package config

// Config представляет конфигурацию cronplan
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Crontab CrontabConfig `toml:"crontab"`
	Jobs    JobsConfig    `toml:"jobs"`
	Metrics MetricsConfig `toml:"metrics"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// CrontabConfig описывает, как читать и устанавливать crontab
type CrontabConfig struct {
	// Binary is the crontab(1) executable, looked up in PATH when not absolute.
	Binary string `toml:"binary"`
	// User is passed as "-u <user>" unless the plan file names its own user.
	User string `toml:"user"`
}

// JobsConfig содержит значения по умолчанию для задач
type JobsConfig struct {
	Interpreter string `toml:"interpreter"`
}

// MetricsConfig представляет конфигурацию метрик
type MetricsConfig struct {
	// Textfile is the node_exporter textfile collector target. Empty disables metrics output.
	Textfile  string `toml:"textfile"`
	Namespace string `toml:"namespace"`
}
