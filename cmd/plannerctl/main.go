// Command plannerctl is the operator CLI for the trip planner.
package main

import "github.com/pkordes/trip-planner/internal/cli"

func main() {
	cli.Execute()
}
