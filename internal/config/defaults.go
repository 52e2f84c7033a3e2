// Package config provides configuration loading and defaults for healthcheck.
package config

import "time"

// DefaultOrg is the organisation checked when none is given.
const DefaultOrg = "openplanets"

// DefaultGitHubURL is the GitHub REST API root.
const DefaultGitHubURL = "https://api.github.com"

// DefaultTravisURL is the Travis CI REST API root.
const DefaultTravisURL = "https://api.travis-ci.org"

// DefaultConfigDir is the default location for healthcheck configuration.
const DefaultConfigDir = "~/.config/healthcheck"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. HEALTHCHECK_GITHUB_TOKEN.
const EnvPrefix = "HEALTHCHECK"

// DefaultHTTPTimeout bounds every upstream request.
const DefaultHTTPTimeout = 30 * time.Second

// DefaultWeights holds the default health score weights.
var DefaultWeights = Weights{
	ReadMe:   25,
	License:  25,
	Metadata: 15,
	CI:       20,
	Activity: 15,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}

// DefaultLog holds the default logging preferences.
var DefaultLog = Log{
	Level:  "info",
	Format: "console",
}
