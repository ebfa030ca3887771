package main

import "github.com/serverlessresearch/mcadmin/cmd"

func main() {
	cmd.Execute()
}
