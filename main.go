package main

import (
	"os"

	"github.com/roleadmin/roleadmin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
