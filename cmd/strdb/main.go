// cmd/strdb/main.go
package main

import (
	_ "github.com/joho/godotenv/autoload"

	"strdb/internal/app"
	"strdb/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
