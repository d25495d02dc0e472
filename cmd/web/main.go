package main

import "hirehub/internal/server"

func main() {
	server.Run()
}
