package main

import (
	"flag"
)

type AppFlags struct {
	GlobalConfigFile string
	Once             bool
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	once := flag.Bool("once", false, "Run a single monitoring cycle and exit. A failed cycle exits non-zero.")
	onceAlias := flag.Bool("o", false, "Alias for -once")

	flag.Parse()

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	flags.Once = *once || *onceAlias

	return flags
}
