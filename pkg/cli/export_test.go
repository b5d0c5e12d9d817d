package cli

// RunWithWriter runs the CLI writing reports to stdout
var RunWithWriter = run
