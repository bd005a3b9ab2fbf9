package main

import (
	"go.uber.org/fx"

	"newscast/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
