package qklog_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serajian/go-query-builder/qklog"
)

func newTestLogger(buf *bytes.Buffer) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(buf)
	return l
}

func TestQueryLogsSuccessFields(t *testing.T) {
	var buf bytes.Buffer
	q := qklog.New(newTestLogger(&buf))
	q.Query(`SELECT 1`, 0, 2*time.Millisecond, nil)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, "querykit", fields["system"])
	assert.Equal(t, true, fields["success"])
	assert.Equal(t, `SELECT 1`, fields["sql"])
}

func TestQueryLogsErrorField(t *testing.T) {
	var buf bytes.Buffer
	q := qklog.New(newTestLogger(&buf))
	q.Query(`SELECT 1`, 0, time.Millisecond, errors.New("boom"))

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, false, fields["success"])
	assert.Equal(t, "boom", fields["err"])
}

func TestTransactionLogsDepth(t *testing.T) {
	var buf bytes.Buffer
	q := qklog.New(newTestLogger(&buf))
	q.Transaction("begin", 1, nil)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, "begin", fields["action"])
	assert.Equal(t, float64(1), fields["depth"])
}
