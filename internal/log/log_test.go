// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	err := h.HandleLog(&log.Entry{Level: log.InfoLevel, Message: "Done!", Timestamp: ts})
	assert.NoError(t, err)
	assert.Equal(t, "2020-01-02 03:04:05 I Done!\n", buf.String())
}

func TestInitLogger_Level(t *testing.T) {
	t.Setenv("CPICTL_LOG", "debug")
	InitLogger()
	l, ok := log.Log.(*log.Logger)
	assert.True(t, ok)
	assert.Equal(t, log.DebugLevel, l.Level)

	t.Setenv("CPICTL_LOG", "")
	InitLogger()
	assert.Equal(t, log.ErrorLevel, l.Level)
}
