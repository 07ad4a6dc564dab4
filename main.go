package main

import "github.com/raihanmd/employee-management/cmd"

func main() {
	cmd.Execute()
}
