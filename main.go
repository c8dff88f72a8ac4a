package main

import "github.com/peopleops/hr-management/cmd"

func main() {
	cmd.Execute()
}
