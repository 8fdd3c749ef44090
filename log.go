package orrery

import (
	"io"

	kitlog "github.com/go-kit/log"
)

// NewLogger returns a logfmt logger safe for concurrent use. A nil writer discards.
func NewLogger(w io.Writer) kitlog.Logger {
	if w == nil {
		return kitlog.NewNopLogger()
	}
	return kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
}
