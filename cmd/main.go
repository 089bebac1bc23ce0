package main

import (
	"github.com/punkyalice/Foodprep/config"
	"github.com/punkyalice/Foodprep/routes"
	"github.com/punkyalice/Foodprep/services"
)

func main() {
	config.InitDB()

	hub := services.NewRealtimeHub()
	services.InitEventDeps(hub)

	r := routes.SetupRouter(hub)
	r.Run(":8080")
}
