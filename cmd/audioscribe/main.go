package main

import (
	"context"
	"os"

	"github.com/nguyentantai21042004/audioscribe/internal/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log := appLog
		if log == nil {
			log = logger.New("info")
		}
		log.Error(context.Background(), "%v", err)
		os.Exit(1)
	}
}
