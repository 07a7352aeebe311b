package main

import "github.com/rpupo63/portfolio-backend/cmd"

func main() {
	cmd.Execute()
}
