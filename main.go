// main.go
//
// Entry point; all CLI handling lives in cmd/.

package main

import (
	"github.com/agent-sim/agent-sim/cmd"
)

func main() {
	cmd.Execute()
}
