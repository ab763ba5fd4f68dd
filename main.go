package main

import (
	"log"
	"os"
	"time"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/api"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/server"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

// @title flores checkout API
// @version 0.1
// @description Checkout and payment reconciliation for the flower store.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
// @schemes http https

// @securityDefinitions.apiKey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	_ = godotenv.Load("dev.env")

	app := cli.NewApp()
	app.Name = "Flores Checkout Service"
	app.Version = "1.00"
	app.Compiled = time.Now()
	app.Authors = []cli.Author{
		{
			Name:  "Juan Diego Vives Criollo",
			Email: "juandiegovivescriollo@gmail.com",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "backend-up",
			Usage: "This command starts the checkout service",
			Action: func(c *cli.Context) error {
				StartServer(api.GetRoutes())
				return nil
			},
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func StartServer(routes []*server.Route) {
	ctx := server.GetAppContext()
	ctx.CreateMySQLConnection()
	ctx.CreateSMTPConnection()
	ctx.CreateIzipayIntegration()
	ctx.CreateNewSessionS3()

	server.UpServer(routes, ctx)
}
