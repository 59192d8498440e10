package config

import "time"

// Base application details
const AppName = "scribe"
const ConfigDirName = "scribe"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "scribe.log"

// Status Bar
const MessageTimeout = 4 * time.Second

// Editing defaults; overridable from the config file.
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultCacheFrequency = 10
const DefaultUndoGroupWindow = 500 * time.Millisecond
const SystemClipboard = true
