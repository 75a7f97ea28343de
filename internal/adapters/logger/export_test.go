package logger

// FormatError exports the private error formatting for testing.
var FormatError = formatError
