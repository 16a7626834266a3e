package main

import (
	"os"

	"github.com/joho/godotenv"

	"ti-tracker/logger"
)

func main() {
	_ = godotenv.Load()

	if err := NewRootCmd(loadService).Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
