package main

import (
	"safecast-migrate/cmd/scmigrate/cmd"
)

func main() {
	cmd.Execute()
}
