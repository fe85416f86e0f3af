// Package config loads the editing engine's tuning settings.
//
// Settings are layered, with later sources overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Project config file     │  ← .texteng/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: configuration file loading (TOML) and environment variables
//   - schema: JSON Schema validation of the merged configuration
//
// # Basic usage
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache := pool.NewChunkCache(settings.Engine.MmapCacheEntries)
//
// # Configuration file
//
// texteng reads TOML:
//
//	# .texteng/config.toml
//	[engine]
//	chunkTargetSize = 65536
//	mmapCacheEntries = 64
//
//	[document]
//	tabWidth = 2
//	lineEnding = "lf"
//
// # Error handling
//
// LoadFrom returns a *schema.ValidationErrors (wrapped as error) if the
// merged configuration fails validation against the embedded schema, or a
// *loader.ParseError if the TOML file itself is malformed.
package config
