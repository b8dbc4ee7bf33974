package main

import "cybele-backend/cmd"

func main() {
	cmd.Run()
}
