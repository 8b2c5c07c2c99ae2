package config

import "errors"

// Sentinel errors for configuration validation. All of them are detected
// before any render call; a configuration that fails validation is never
// handed to the renderer.
var (
	// ErrBadTicketPattern indicates a ticket-map pattern that does not compile.
	ErrBadTicketPattern = errors.New("ticket pattern does not compile")

	// ErrNoCaptureGroup indicates a ticket-map pattern without a capture group.
	ErrNoCaptureGroup = errors.New("ticket pattern needs at least one capture group")

	// ErrMissingPlaceholder indicates a URL template without exactly one %s slot.
	ErrMissingPlaceholder = errors.New("url template needs exactly one %s placeholder")

	// ErrUnknownCharset indicates a character-set name the encoding index does not know.
	ErrUnknownCharset = errors.New("unknown charset")

	// ErrBadLanguageTag indicates a language value that is not a valid BCP 47 tag.
	ErrBadLanguageTag = errors.New("invalid language tag")

	// ErrBadDiffMode indicates a diff disposition outside none/inline/attach.
	ErrBadDiffMode = errors.New("invalid diff mode")
)
