package main

import "github.com/inkpost/blog-api/cmd"

// @title                       Blog API
// @version                     1.0
// @description                 REST backend for a blog: accounts, articles and comments.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	cmd.Execute()
}
