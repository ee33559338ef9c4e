package utils

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LoggerConfig{Format: "json", Output: &buf})
	logger.Print("hello")

	assert.NotZero(t, logger.Flags()&log.Lmsgprefix)
	assert.Contains(t, buf.String(), "[LearnHub] hello")

	buf.Reset()
	logger = InitLogger(LoggerConfig{Output: &buf, Prefix: "[test] ", EnableColors: true})
	logger.Print("hi")

	assert.Zero(t, logger.Flags()&log.Lmsgprefix)
	assert.Contains(t, buf.String(), "\033[36m[test] \033[0m")
	assert.Contains(t, buf.String(), "hi")
}
