package main

import "github.com/MyCarrier-DevOps/go-commitizen/cmd"

func main() {
	cmd.Execute()
}
