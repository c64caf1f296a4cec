package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/bankledger/internal/cli"
	"github.com/dmitrijs2005/bankledger/internal/config"
)

func main() {

	cfg := config.LoadConfig()

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
