package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	dotenv "github.com/joho/godotenv"

	"github.com/Mmodarre/AusHealthSim/internal/command/root"
)

func main() {
	_ = dotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := root.Execute(ctx)
	if err != nil {
		cancel()
		log.Fatal(err)
	}

	cancel()
}
