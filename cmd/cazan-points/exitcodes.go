package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no project, missing assets.json)
	ExitDataError   = 3 // Data error (malformed assets.json or input)
	ExitNotFound    = 4 // Image not found in assets.json
)
