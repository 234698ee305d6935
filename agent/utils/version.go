package utils

// Version is the version of the mediator. Build can set it with -ldflags.
var Version = "0.1.0"
