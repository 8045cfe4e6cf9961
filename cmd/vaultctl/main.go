package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophvault/internal/client/cli"
	"github.com/dmitrijs2005/gophvault/internal/client/config"
)

func main() {

	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app := cli.NewApp(cfg, os.Stdout)
	if err := app.Run(context.Background(), args); err != nil {
		log.Fatalf("%v", err)
	}

}
