package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/gophbudget/internal/adduser"
	"github.com/joho/godotenv"
)

func main() {

	_ = godotenv.Load()

	os.Exit(adduser.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))

}
