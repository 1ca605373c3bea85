package main

import (
	"github.com/coinvault/transfer-gateway/internal/server"
)

func main() {
	server.Init()
}
