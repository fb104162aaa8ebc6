// cmd/server/main.go
package main

import (
	"bankist/app"

	_ "bankist/docs"
)

// @title           Bankist API
// @version         1.0
// @description     Single-session demo bank: login with a logout countdown, transfers, delayed loans and account closure.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
