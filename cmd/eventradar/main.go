package main

import "eventradar/cmd/eventradar/cmd"

// @title EventRadar Functions API
// @version 1.0
// @description Callable backend operations for EventRadar events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token: "Bearer <jwt>"
func main() {
	cmd.Execute()
}
