package main

import "dbcsheet/internal/cli"

func main() {
	cli.Execute()
}
