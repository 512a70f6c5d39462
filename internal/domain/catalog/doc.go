// Package catalog holds the hosted application types the shell can start.
//
// Applications are described by manifests on disk (YAML, TOML or JSON) that
// name the application and list the fonts it needs. The Seeder discovers
// manifests under a directory with a doublestar pattern and registers them.
package catalog
