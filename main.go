package main

import (
	_ "time/tzdata"

	"task-store.com/task-store/cmd"
)

func main() {
	cmd.Execute()
}
