package main

import (
	"context"
	"flag"
	"log"

	"github.com/lmarchuk/translix/internal/cli"
)

func main() {

	dsn := flag.String("d", "translix.db", "SQLite path or postgres:// DSN for the durable store")
	flag.Parse()

	ctx := context.Background()
	app, err := cli.NewApp(ctx, *dsn)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
