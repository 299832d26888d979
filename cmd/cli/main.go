package main

import (
	"context"
	"log"
	"os"

	"github.com/klimata/riskboard/internal/admincli"
	"github.com/klimata/riskboard/internal/buildinfo"
	"github.com/klimata/riskboard/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := admincli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
