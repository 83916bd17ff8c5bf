package main

import "nc-usersync/cmd"

func main() {
	cmd.Execute()
}
