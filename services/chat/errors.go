package chat

import "errors"

var (
	// ErrEmptyMessage rejects a send whose trimmed text is empty.
	ErrEmptyMessage = errors.New("chat: message is empty")
	// ErrSendPending rejects a send while another is in flight.
	ErrSendPending = errors.New("chat: a send is already in flight")
	// ErrMissingCredential rejects a document download without a token.
	ErrMissingCredential = errors.New("chat: download requires a signed-in user")
	// ErrDownloadFailed wraps transport or status failures on document fetch.
	ErrDownloadFailed = errors.New("chat: document download failed")
)
