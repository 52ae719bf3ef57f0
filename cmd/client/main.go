package main

import (
	"context"

	"github.com/daybook-app/daybook/internal/client/cli"
	"github.com/daybook-app/daybook/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Run(ctx)

}
