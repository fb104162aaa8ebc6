package repository

import (
	"os"
	"testing"

	"bankist/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
