package main

import (
	"github.com/boardswap/core/internal/app"
	"github.com/boardswap/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
