// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// CPICTL_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("CPICTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})
	log.SetLevelFromString(level)
}

// CustomHandler formats log messages and writes to stdout
type CustomHandler struct {
	// Writer overrides stdout.
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stdout
	}
	timestamp := e.Timestamp.Format("2006-01-02 15:04:05")
	if e.Timestamp.IsZero() {
		timestamp = time.Now().Format("2006-01-02 15:04:05")
	}
	level := strings.ToUpper(e.Level.String())
	_, err := fmt.Fprintf(w, "%s %.1s %s\n", timestamp, level, e.Message)
	return err
}
