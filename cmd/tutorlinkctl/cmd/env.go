package cmd

import "github.com/sethvargo/go-envconfig"

// envLookuper supplies configuration; tests swap it for a map.
var envLookuper = envconfig.OsLookuper
