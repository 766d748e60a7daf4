package domain

import "errors"

// Domain errors.
var (
	ErrNotInitialized   = errors.New("vault not initialized (run 'vaultpipe init' first)")
	ErrVaultUnreadable  = errors.New("cannot enumerate vault directory")
	ErrEmptyFilename    = errors.New("filename cannot be empty")
	ErrSourceMissing    = errors.New("source file does not exist")
	ErrCopyVerification = errors.New("destination verification failed after copy")
	ErrWatcherClosed    = errors.New("watcher event channel closed")
)
