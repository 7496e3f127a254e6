// SPDX-License-Identifier: EPL-2.0

// Package logging configures the process-wide logrus logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrUnknownFormat = errors.New("unknown log format")

// Setup points the standard logrus logger at w with the given level
// ("debug", "info", ...) and format ("text" or "json").
func Setup(level, format string, w io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	var formatter log.Formatter
	switch strings.ToLower(format) {
	case "", "text":
		formatter = &log.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &log.JSONFormatter{}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	log.SetLevel(lvl)
	log.SetFormatter(formatter)
	log.SetOutput(w)

	return nil
}
