// Polaris is a provider adapter and usage accountant for MiniMax models.
//
// It discovers the models a MiniMax account can use, prices completed
// calls against a static catalog, and maps provider profiles onto the
// environment of an aider subprocess.
//
// Usage:
//
//	# List the models the configured profile can use
//	polaris models
//
//	# Price a completed call
//	polaris cost --model MiniMax-M2 --input 1000 --output 500
//
//	# Print the aider environment for a model
//	polaris env --model MiniMax-M2
//
//	# Start the HTTP service
//	polaris serve --config /path/to/polaris.yaml
//
//	# Show version information
//	polaris version
package main

func main() {
	Execute()
}
