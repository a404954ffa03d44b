package main

import (
	"github.com/dropstats/backend/cmd/app"
)

func main() {
	app.Run()
}
